package model

import (
	"time"
)

type Tournament struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	MatchType        MatchType        `json:"match_type"`
	MaxPlayers       *int             `json:"max_players,omitempty"`
	EntryFee         int64            `json:"entry_fee"`
	Status           TournamentStatus `json:"status"`
	ParticipantCount int              `json:"participant_count"`
	Version          int              `json:"version"`
	Participants     []Participant    `json:"participants"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// TotalSlots returns ceil(maxPlayers / teamSize), or 0 when the tournament
// has no player cap.
func (t *Tournament) TotalSlots() int {
	if t.MaxPlayers == nil {
		return 0
	}
	size := t.MatchType.TeamSize()
	return (*t.MaxPlayers + size - 1) / size
}

type Participant struct {
	ParticipantID string    `json:"participant_id"`
	TournamentID  string    `json:"tournament_id"`
	UserID        int64     `json:"user_id"`
	DisplayName   string    `json:"display_name"`
	ContactEmail  string    `json:"contact_email"`
	GameHandle    string    `json:"game_handle"`
	SlotNumber    int       `json:"slot_number"`
	Position      Position  `json:"position"`
	TransactionID string    `json:"transaction_id"`
	JoinedAt      time.Time `json:"joined_at"`
}

type Account struct {
	UserID           int64     `json:"user_id"`
	DisplayName      string    `json:"display_name"`
	Email            string    `json:"email"`
	WalletBalance    int64     `json:"wallet_balance"`
	DepositedBalance int64     `json:"deposited_balance"`
	WinningBalance   int64     `json:"winning_balance"`
	BonusBalance     int64     `json:"bonus_balance"`
	MatchesPlayed    int       `json:"matches_played"`
	Version          int       `json:"version"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Reconciled reports whether the wallet balance equals the sum of its
// sub-balances.
func (a *Account) Reconciled() bool {
	return a.WalletBalance == a.DepositedBalance+a.WinningBalance+a.BonusBalance
}

// Debit is a wallet debit split across sub-balances.
type Debit struct {
	Deposited int64 `json:"deposited"`
	Winning   int64 `json:"winning"`
	Bonus     int64 `json:"bonus"`
}

func (d Debit) Total() int64 {
	return d.Deposited + d.Winning + d.Bonus
}

type Pick struct {
	SlotNumber int      `json:"slot" example:"3"`
	Position   Position `json:"position" example:"A"`
	GameHandle string   `json:"game_handle" example:"Player1"`
}

type Transaction struct {
	ID            int64             `json:"id"`
	TransactionID string            `json:"transaction_id"`
	UserID        int64             `json:"user_id"`
	Type          TransactionType   `json:"type"`
	Amount        int64             `json:"amount"`
	Description   string            `json:"description"`
	Status        TransactionStatus `json:"status"`
	ReferenceID   string            `json:"reference_id,omitempty"`
	Positions     []Pick            `json:"positions,omitempty"`
	FailureReason string            `json:"failure_reason,omitempty"`
	CreatedAt     time.Time         `json:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at"`
}

type BookingRequest struct {
	IntentID string `json:"intent_id" binding:"required,uuid" example:"550e8400-e29b-41d4-a716-446655440000"`
	Picks    []Pick `json:"picks"`
}

// ValidatedBooking is a booking accepted against a specific tournament
// snapshot. It carries no mutable state.
type ValidatedBooking struct {
	TournamentID    string
	TournamentName  string
	Picks           []Pick
	EntryFee        int64
	TotalCost       int64
	SnapshotVersion int
}

type CommitOutcome struct {
	TransactionID    string
	TournamentID     string
	UserID           int64
	Participants     []Participant
	TotalCost        int64
	WalletBalance    int64
	AlreadyProcessed bool
}

type BookingResponse struct {
	Status        string                `json:"status" example:"success"`
	TransactionID string                `json:"transaction_id" example:"550e8400-e29b-41d4-a716-446655440000"`
	TournamentID  string                `json:"tournament_id"`
	TotalCost     string                `json:"total_cost" example:"60.00"`
	Balance       string                `json:"balance" example:"40.00"`
	Participants  []ParticipantResponse `json:"participants"`
	Message       string                `json:"message,omitempty" example:"Booking confirmed"`
}

type ParticipantResponse struct {
	ParticipantID string   `json:"participant_id"`
	SlotNumber    int      `json:"slot"`
	Position      Position `json:"position"`
	GameHandle    string   `json:"game_handle"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"insufficient balance, add funds"`
	Code    string `json:"code,omitempty" example:"INSUFFICIENT_FUNDS"`
	Details string `json:"details,omitempty"`
}

type BalanceResponse struct {
	UserID           int64  `json:"user_id" example:"1"`
	WalletBalance    string `json:"wallet_balance" example:"100.00"`
	DepositedBalance string `json:"deposited_balance" example:"80.00"`
	WinningBalance   string `json:"winning_balance" example:"20.00"`
	BonusBalance     string `json:"bonus_balance" example:"0.00"`
	MatchesPlayed    int    `json:"matches_played" example:"3"`
}

type TransactionListResponse struct {
	Transactions []*Transaction `json:"transactions"`
	Total        int            `json:"total"`
	Limit        int            `json:"limit"`
	Offset       int            `json:"offset"`
}

// UserContest is one tournament a user holds seats in.
type UserContest struct {
	TournamentID string
	Name         string
	MatchType    MatchType
	Status       TournamentStatus
	EntryFee     int64
	Positions    []Pick
	JoinedAt     time.Time
}

type ContestView struct {
	TournamentID string           `json:"tournament_id"`
	Name         string           `json:"name"`
	MatchType    MatchType        `json:"match_type"`
	Status       TournamentStatus `json:"status"`
	EntryFee     string           `json:"entry_fee" example:"30.00"`
	TotalPaid    string           `json:"total_paid" example:"60.00"`
	Positions    []Pick           `json:"positions"`
	JoinedAt     time.Time        `json:"joined_at"`
}

type ContestListResponse struct {
	UserID   int64         `json:"user_id"`
	Contests []ContestView `json:"contests"`
	Total    int           `json:"total"`
	Limit    int           `json:"limit"`
	Offset   int           `json:"offset"`
}

type TournamentSummary struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	MatchType        MatchType        `json:"match_type"`
	MaxPlayers       *int             `json:"max_players,omitempty"`
	EntryFee         int64            `json:"entry_fee"`
	Status           TournamentStatus `json:"status"`
	ParticipantCount int              `json:"participant_count"`
	TotalSlots       int              `json:"total_slots"`
}

type TournamentListResponse struct {
	Tournaments []TournamentSummary `json:"tournaments"`
	Total       int                 `json:"total"`
}

type SlotView struct {
	SlotNumber int                       `json:"slot"`
	Occupied   map[Position]OccupantView `json:"occupied"`
	Available  []Position                `json:"available"`
	Full       bool                      `json:"full"`
}

type OccupantView struct {
	GameHandle  string `json:"game_handle"`
	DisplayName string `json:"display_name"`
	Mine        bool   `json:"mine"`
}

type SlotGridResponse struct {
	TournamentID string     `json:"tournament_id"`
	MatchType    MatchType  `json:"match_type"`
	TeamSize     int        `json:"team_size"`
	Positions    []Position `json:"positions"`
	EntryFee     string     `json:"entry_fee" example:"50.00"`
	TotalSlots   int        `json:"total_slots"`
	FilledSlots  int        `json:"filled_slots"`
	MaxPicks     int        `json:"max_picks"`
	Slots        []SlotView `json:"slots"`
	MySlots      []Pick     `json:"my_slots"`
	Version      int        `json:"version"`
}

// BookingEvent is published after a booking commits.
type BookingEvent struct {
	TransactionID string    `json:"transaction_id"`
	TournamentID  string    `json:"tournament_id"`
	UserID        int64     `json:"user_id"`
	Picks         []Pick    `json:"picks"`
	TotalCost     int64     `json:"total_cost"`
	CommittedAt   time.Time `json:"committed_at"`
}
