package pollservice

import (
	"log/slog"

	httpadapter "caravan/contexts/trip-planning/poll-service/adapters/http"
	"caravan/contexts/trip-planning/poll-service/adapters/memory"
	"caravan/contexts/trip-planning/poll-service/application/commands"
	"caravan/contexts/trip-planning/poll-service/application/queries"
	"caravan/contexts/trip-planning/poll-service/ports"
)

type Module struct {
	Handler httpadapter.Handler
	Store   *memory.Store
}

type Dependencies struct {
	Proposals   ports.ProposalRepository
	Votes       ports.VoteRepository
	Membership  ports.MembershipProvider
	Outbox      ports.OutboxWriter
	Clock       ports.Clock
	IDGenerator ports.IDGenerator
	Logger      *slog.Logger
}

func NewModule(deps Dependencies) Module {
	proposalUseCase := commands.ProposalUseCase{
		Proposals: deps.Proposals,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	voteUseCase := commands.VoteUseCase{
		Proposals: deps.Proposals,
		Votes:     deps.Votes,
		Outbox:    deps.Outbox,
		Clock:     deps.Clock,
		IDGen:     deps.IDGenerator,
		Logger:    deps.Logger,
	}
	resultUseCase := queries.ResultUseCase{
		Proposals:  deps.Proposals,
		Votes:      deps.Votes,
		Membership: deps.Membership,
		Clock:      deps.Clock,
	}
	return Module{
		Handler: httpadapter.Handler{
			Proposals: proposalUseCase,
			Votes:     voteUseCase,
			Results:   resultUseCase,
			Logger:    deps.Logger,
		},
	}
}

func NewInMemoryModule(logger *slog.Logger) Module {
	store := memory.NewStore()
	module := NewModule(Dependencies{
		Proposals:   store,
		Votes:       store,
		Membership:  store,
		Outbox:      store,
		Clock:       store,
		IDGenerator: store,
		Logger:      logger,
	})
	module.Store = store
	return module
}
