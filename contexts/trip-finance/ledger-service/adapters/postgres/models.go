package postgresadapter

import (
	"time"

	"caravan/contexts/trip-finance/ledger-service/domain/entities"
)

type expenseModel struct {
	ID          string    `gorm:"column:id;primaryKey"`
	TripID      string    `gorm:"column:trip_id"`
	PayerID     string    `gorm:"column:payer_id"`
	Description string    `gorm:"column:description"`
	Amount      float64   `gorm:"column:amount"`
	Currency    string    `gorm:"column:currency"`
	Policy      string    `gorm:"column:split_policy"`
	Status      string    `gorm:"column:status"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (expenseModel) TableName() string {
	return "trip_expenses"
}

type splitModel struct {
	ExpenseID     string   `gorm:"column:expense_id;primaryKey"`
	ParticipantID string   `gorm:"column:participant_id;primaryKey"`
	Position      int      `gorm:"column:position"`
	Amount        float64  `gorm:"column:amount"`
	Percent       *float64 `gorm:"column:percent"`
}

func (splitModel) TableName() string {
	return "trip_expense_splits"
}

type settlementModel struct {
	ID                string    `gorm:"column:id;primaryKey"`
	TripID            string    `gorm:"column:trip_id"`
	FromParticipantID string    `gorm:"column:from_participant_id"`
	ToParticipantID   string    `gorm:"column:to_participant_id"`
	Amount            float64   `gorm:"column:amount"`
	Status            string    `gorm:"column:status"`
	Note              string    `gorm:"column:note"`
	CreatedBy         string    `gorm:"column:created_by"`
	CreatedAt         time.Time `gorm:"column:created_at"`
}

func (settlementModel) TableName() string {
	return "trip_settlements"
}

type memberModel struct {
	TripID              string    `gorm:"column:trip_id;primaryKey"`
	ParticipantID       string    `gorm:"column:participant_id;primaryKey"`
	DefaultSharePercent float64   `gorm:"column:default_share_percent"`
	JoinedAt            time.Time `gorm:"column:joined_at"`
}

func (memberModel) TableName() string {
	return "trip_members"
}

type outboxModel struct {
	OutboxID     string     `gorm:"column:outbox_id;primaryKey"`
	EventType    string     `gorm:"column:event_type"`
	PartitionKey string     `gorm:"column:partition_key"`
	Payload      []byte     `gorm:"column:payload"`
	Status       string     `gorm:"column:status"`
	CreatedAt    time.Time  `gorm:"column:created_at"`
	PublishedAt  *time.Time `gorm:"column:published_at"`
}

func (outboxModel) TableName() string {
	return "ledger_outbox"
}

func expenseModelFromEntity(expense entities.Expense) expenseModel {
	row := expenseModel{
		ID:          expense.ExpenseID,
		TripID:      expense.TripID,
		PayerID:     expense.PayerID,
		Description: expense.Description,
		Amount:      expense.Amount,
		Currency:    expense.Currency,
		Policy:      string(expense.Policy),
		Status:      string(expense.Status),
		CreatedAt:   expense.CreatedAt.UTC(),
		UpdatedAt:   expense.UpdatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	if row.UpdatedAt.IsZero() {
		row.UpdatedAt = row.CreatedAt
	}
	return row
}

func splitModelsFromEntity(expense entities.Expense) []splitModel {
	rows := make([]splitModel, 0, len(expense.Splits))
	for i, split := range expense.Splits {
		rows = append(rows, splitModel{
			ExpenseID:     expense.ExpenseID,
			ParticipantID: split.ParticipantID,
			Position:      i,
			Amount:        split.Amount,
			Percent:       split.Percent,
		})
	}
	return rows
}

func (m expenseModel) toEntity(splits []entities.Split) entities.Expense {
	return entities.Expense{
		ExpenseID:   m.ID,
		TripID:      m.TripID,
		PayerID:     m.PayerID,
		Description: m.Description,
		Amount:      m.Amount,
		Currency:    m.Currency,
		Policy:      entities.SplitPolicy(m.Policy),
		Status:      entities.ExpenseStatus(m.Status),
		Splits:      splits,
		CreatedAt:   m.CreatedAt.UTC(),
		UpdatedAt:   m.UpdatedAt.UTC(),
	}
}

func (m splitModel) toEntity() entities.Split {
	return entities.Split{
		ParticipantID: m.ParticipantID,
		Amount:        m.Amount,
		Percent:       m.Percent,
	}
}

func settlementModelFromEntity(settlement entities.Settlement) settlementModel {
	row := settlementModel{
		ID:                settlement.SettlementID,
		TripID:            settlement.TripID,
		FromParticipantID: settlement.FromParticipantID,
		ToParticipantID:   settlement.ToParticipantID,
		Amount:            settlement.Amount,
		Status:            string(settlement.Status),
		Note:              settlement.Note,
		CreatedBy:         settlement.CreatedBy,
		CreatedAt:         settlement.CreatedAt.UTC(),
	}
	if row.CreatedAt.IsZero() {
		row.CreatedAt = time.Now().UTC()
	}
	return row
}

func (m settlementModel) toEntity() entities.Settlement {
	return entities.Settlement{
		SettlementID:      m.ID,
		TripID:            m.TripID,
		FromParticipantID: m.FromParticipantID,
		ToParticipantID:   m.ToParticipantID,
		Amount:            m.Amount,
		Status:            entities.SettlementStatus(m.Status),
		Note:              m.Note,
		CreatedBy:         m.CreatedBy,
		CreatedAt:         m.CreatedAt.UTC(),
	}
}
