package payment

import (
	"errors"

	"github.com/ManuelReschke/CartFox/app/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository provides DB operations used by the payment service. Settlement
// methods lock the payment row so concurrent duplicate notifications for the
// same reference serialize on the check-then-set.
type Repository interface {
	Create(p *models.Payment) error
	GetByID(id string) (*models.Payment, error)
	GetByReference(reference string) (*models.Payment, error)
	ListByUser(userID uint) ([]models.Payment, error)
	List(offset, limit int) ([]models.Payment, int64, error)
	GetOrderByID(id string) (*models.Order, error)
	SettleSuccess(reference, transactionID string, amount decimal.Decimal) (*models.Payment, error)
	SettleFailure(reference string) (*models.Payment, bool, error)
	MarkRefunded(id string) error
	AppendWebhookLog(entry *models.WebhookLog) error
	ListWebhookLogs(offset, limit int) ([]models.WebhookLog, int64, error)
}

type gormRepository struct {
	db *gorm.DB
}

// NewRepository creates a payment repository backed by GORM.
func NewRepository(db *gorm.DB) Repository {
	return &gormRepository{db: db}
}

func (r *gormRepository) Create(p *models.Payment) error {
	return r.db.Create(p).Error
}

func (r *gormRepository) GetByID(id string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.Where("id = ?", id).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) GetByReference(reference string) (*models.Payment, error) {
	var p models.Payment
	if err := r.db.Where("reference = ?", reference).First(&p).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *gormRepository) ListByUser(userID uint) ([]models.Payment, error) {
	var payments []models.Payment
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

func (r *gormRepository) List(offset, limit int) ([]models.Payment, int64, error) {
	var count int64
	if err := r.db.Model(&models.Payment{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var payments []models.Payment
	err := r.db.Order("created_at DESC").Offset(offset).Limit(limit).Find(&payments).Error
	return payments, count, err
}

func (r *gormRepository) GetOrderByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items").Where("id = ?", id).First(&order).Error; err != nil {
		return nil, err
	}
	return &order, nil
}

// SettleSuccess applies a success outcome exactly once. The payment row is
// locked, the reported amount is compared against the recorded amount, the
// terminal-status guard trips ErrAlreadyProcessed on duplicates, and the
// payment update plus the order transition to paid commit together.
func (r *gormRepository) SettleSuccess(reference, transactionID string, amount decimal.Decimal) (*models.Payment, error) {
	var settled *models.Payment
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var p models.Payment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reference = ?", reference).First(&p).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		if err := settleSuccessGuard(&p, amount); err != nil {
			return err
		}

		updates := map[string]interface{}{
			"status":         models.PaymentStatusSuccess,
			"transaction_id": transactionID,
			"amount":         amount,
		}
		if err := tx.Model(&p).Updates(updates).Error; err != nil {
			return err
		}

		var order models.Order
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", p.OrderID).First(&order).Error
		if err != nil {
			return err
		}
		if models.OrderCanTransition(order.Status, models.OrderStatusPaid) {
			if err := tx.Model(&order).Update("status", models.OrderStatusPaid).Error; err != nil {
				return err
			}
		}

		p.Status = models.PaymentStatusSuccess
		p.TransactionID = transactionID
		p.Amount = amount
		settled = &p
		return nil
	})
	if err != nil {
		return nil, err
	}
	return settled, nil
}

// SettleFailure applies a failure outcome. Success is sticky: a failure event
// arriving after a success (or refund) is reported as not applied without an
// error so the caller can log and acknowledge it. A duplicate failure trips
// ErrAlreadyProcessed.
func (r *gormRepository) SettleFailure(reference string) (*models.Payment, bool, error) {
	var settled *models.Payment
	applied := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		var p models.Payment
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("reference = ?", reference).First(&p).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPaymentNotFound
			}
			return err
		}

		apply, err := settleFailureOutcome(p.Status)
		if err != nil {
			return err
		}
		if !apply {
			settled = &p
			return nil
		}

		if err := tx.Model(&p).Update("status", models.PaymentStatusFailed).Error; err != nil {
			return err
		}

		var order models.Order
		err = tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", p.OrderID).First(&order).Error
		if err != nil {
			return err
		}
		if models.OrderCanTransition(order.Status, models.OrderStatusFailed) {
			if err := tx.Model(&order).Update("status", models.OrderStatusFailed).Error; err != nil {
				return err
			}
		}

		p.Status = models.PaymentStatusFailed
		settled = &p
		applied = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return settled, applied, nil
}

// settleSuccessGuard enforces the success settlement rules against the locked
// payment row. The reported amount must match what was recorded at initiation;
// only then does the terminal check decide whether this is a duplicate.
func settleSuccessGuard(p *models.Payment, amount decimal.Decimal) error {
	if !p.Amount.Equal(amount) {
		return ErrAmountMismatch
	}
	if p.IsTerminal() {
		return ErrAlreadyProcessed
	}
	return nil
}

// settleFailureOutcome decides what a failure event does to the locked payment
// row. Success and refunded are sticky and absorb the event; a repeated
// failure is a duplicate.
func settleFailureOutcome(status string) (bool, error) {
	switch status {
	case models.PaymentStatusSuccess, models.PaymentStatusRefunded:
		return false, nil
	case models.PaymentStatusFailed:
		return false, ErrAlreadyProcessed
	}
	return true, nil
}

func (r *gormRepository) MarkRefunded(id string) error {
	return r.db.Model(&models.Payment{}).Where("id = ?", id).
		Update("status", models.PaymentStatusRefunded).Error
}

func (r *gormRepository) AppendWebhookLog(entry *models.WebhookLog) error {
	return r.db.Create(entry).Error
}

func (r *gormRepository) ListWebhookLogs(offset, limit int) ([]models.WebhookLog, int64, error) {
	var count int64
	if err := r.db.Model(&models.WebhookLog{}).Count(&count).Error; err != nil {
		return nil, 0, err
	}
	var logs []models.WebhookLog
	err := r.db.Order("received_at DESC").Offset(offset).Limit(limit).Find(&logs).Error
	return logs, count, err
}
