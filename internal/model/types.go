package model

import "strings"

type MatchType string

const (
	MatchSolo  MatchType = "solo"
	MatchDuo   MatchType = "duo"
	MatchSquad MatchType = "squad"
)

type Position string

const (
	PositionA Position = "A"
	PositionB Position = "B"
	PositionC Position = "C"
	PositionD Position = "D"
)

var matchPositions = map[MatchType][]Position{
	MatchSolo:  {PositionA},
	MatchDuo:   {PositionA, PositionB},
	MatchSquad: {PositionA, PositionB, PositionC, PositionD},
}

func ParseMatchType(s string) (MatchType, error) {
	switch strings.ToLower(s) {
	case string(MatchSolo):
		return MatchSolo, nil
	case string(MatchDuo):
		return MatchDuo, nil
	case string(MatchSquad):
		return MatchSquad, nil
	default:
		return "", ErrInvalidRequest
	}
}

// TeamSize is the number of positions in one slot. Unknown match types are
// treated as solo.
func (m MatchType) TeamSize() int {
	return len(m.Positions())
}

// Positions returns the ordered position labels of a slot.
func (m MatchType) Positions() []Position {
	if p, ok := matchPositions[m]; ok {
		return p
	}
	return matchPositions[MatchSolo]
}

// HasPosition reports whether p is a valid label for the match type.
func (m MatchType) HasPosition(p Position) bool {
	for _, pos := range m.Positions() {
		if pos == p {
			return true
		}
	}
	return false
}

func (m MatchType) String() string {
	return string(m)
}

type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentLive      TournamentStatus = "live"
	TournamentCompleted TournamentStatus = "completed"
	TournamentCancelled TournamentStatus = "cancelled"
)

func ParseTournamentStatus(s string) (TournamentStatus, error) {
	switch s {
	case string(TournamentUpcoming):
		return TournamentUpcoming, nil
	case string(TournamentLive):
		return TournamentLive, nil
	case string(TournamentCompleted):
		return TournamentCompleted, nil
	case string(TournamentCancelled):
		return TournamentCancelled, nil
	default:
		return "", ErrInvalidRequest
	}
}

type TransactionType string

const (
	TypeDeposit    TransactionType = "deposit"
	TypeWithdrawal TransactionType = "withdrawal"
	TypeEntryFee   TransactionType = "entry_fee"
	TypeWinning    TransactionType = "winning"
	TypeBonus      TransactionType = "bonus"
	TypeReferral   TransactionType = "referral"
)

func (t TransactionType) String() string {
	return string(t)
}

type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusRejected  TransactionStatus = "rejected"
)

func (s TransactionStatus) String() string {
	return string(s)
}
