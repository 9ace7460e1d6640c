// Package pollservice implements group decision voting inside the
// trip-planning context.
//
// The module owns proposal lifecycle, vote capture for single-choice and
// approval proposals, atomic ranked-ballot replacement, and the three tally
// reducers (yes/no counts, Borda standings, approval standings). Business
// rules live in domain/application layers; infrastructure sits behind ports
// and adapters.
package pollservice
