package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/ulogs/wallet-backend/internal/domain"
)

// globalPropertiesRepository implements domain.GlobalPropertiesRepository
type globalPropertiesRepository struct {
	db *DB
}

// NewGlobalPropertiesRepository creates a new global properties repository
func NewGlobalPropertiesRepository(db *DB) domain.GlobalPropertiesRepository {
	return &globalPropertiesRepository{db: db}
}

// GetGlobalProperties retrieves the most recently indexed vesting totals
func (r *globalPropertiesRepository) GetGlobalProperties(ctx context.Context) (*domain.GlobalProperties, error) {
	query := `
		SELECT total_vesting_shares, total_vesting_fund_steem
		FROM dynamic_global_properties
		ORDER BY block_num DESC
		LIMIT 1
	`

	var totalSharesStr, totalFundStr string

	err := r.db.QueryRowContext(ctx, query).Scan(&totalSharesStr, &totalFundStr)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("no global properties indexed yet: %w", err)
		}
		return nil, fmt.Errorf("failed to get global properties: %w", err)
	}

	totalShares, err := decimal.NewFromString(totalSharesStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total_vesting_shares: %w", err)
	}

	totalFund, err := decimal.NewFromString(totalFundStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse total_vesting_fund_steem: %w", err)
	}

	return &domain.GlobalProperties{
		TotalVestingShares:    totalShares,
		TotalVestingFundSteem: totalFund,
	}, nil
}
