package ledgerservice

import (
	"log/slog"

	httpadapter "caravan/contexts/trip-finance/ledger-service/adapters/http"
	"caravan/contexts/trip-finance/ledger-service/adapters/memory"
	"caravan/contexts/trip-finance/ledger-service/application/commands"
	"caravan/contexts/trip-finance/ledger-service/application/queries"
	"caravan/contexts/trip-finance/ledger-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Expenses        ports.ExpenseRepository
	Settlements     ports.SettlementRepository
	Members         ports.MemberProvider
	Outbox          ports.OutboxWriter
	Clock           ports.Clock
	IDGenerator     ports.IDGenerator
	DefaultCurrency string
	Logger          *slog.Logger
}

func NewModule(deps Dependencies) Module {
	expenseUseCase := commands.ExpenseUseCase{
		Expenses:        deps.Expenses,
		Members:         deps.Members,
		Outbox:          deps.Outbox,
		Clock:           deps.Clock,
		IDGen:           deps.IDGenerator,
		DefaultCurrency: deps.DefaultCurrency,
		Logger:          deps.Logger,
	}
	settlementUseCase := commands.SettlementUseCase{
		Expenses:    deps.Expenses,
		Settlements: deps.Settlements,
		Outbox:      deps.Outbox,
		Clock:       deps.Clock,
		IDGen:       deps.IDGenerator,
		Logger:      deps.Logger,
	}
	balanceUseCase := queries.BalanceUseCase{
		Expenses:    deps.Expenses,
		Settlements: deps.Settlements,
	}
	return Module{
		Handler: httpadapter.Handler{
			Expenses:    expenseUseCase,
			Settlements: settlementUseCase,
			Balances:    balanceUseCase,
			Logger:      deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Expenses:        store,
		Settlements:     store,
		Members:         store,
		Outbox:          store,
		Clock:           store,
		IDGenerator:     store,
		DefaultCurrency: "USD",
		Logger:          logger,
	})
	module.Store = store
	return module
}
