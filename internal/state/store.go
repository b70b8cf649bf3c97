package state

import (
	"slices"
	"sync"

	"sleuth-client/internal/model"
)

// Change names the mirror that was mutated.
type Change string

const (
	ChangeSession Change = "session"
	ChangeTurn    Change = "turn"
	ChangeHand    Change = "hand"
	ChangeDraft   Change = "draft"
	ChangeDiscard Change = "discard"
	ChangeSecrets Change = "secrets"
	ChangeSets    Change = "sets"
	ChangePlayers Change = "players"
	ChangeTimer   Change = "timer"
)

// Store mirrors the server state of one session for the local player.
// Listeners run after the lock is released, in registration order.
type Store struct {
	mu sync.RWMutex

	localID  string
	session  model.Session
	overlay  model.Phase
	players  map[string]model.Player
	order    []string
	hand     []model.Card
	draft    []model.Card
	discard  []model.Card
	secrets  map[string][]model.Secret
	sets     []model.Set
	handlers []func(Change)
}

func NewStore(sessionID, localID string) *Store {
	return &Store{
		localID: localID,
		session: model.Session{ID: sessionID},
		players: make(map[string]model.Player),
		secrets: make(map[string][]model.Secret),
	}
}

func (s *Store) OnChange(fn func(Change)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers = append(s.handlers, fn)
}

func (s *Store) notify(c Change) {
	s.mu.RLock()
	handlers := slices.Clone(s.handlers)
	s.mu.RUnlock()
	for _, fn := range handlers {
		fn(c)
	}
}

func (s *Store) LocalID() string { return s.localID }

func (s *Store) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.ID
}

// Session returns the canonical session with the optimistic phase applied.
func (s *Store) Session() model.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := s.session
	if s.overlay != "" {
		sess.Phase = s.overlay
	}
	return sess
}

// CanonicalPhase ignores the optimistic overlay.
func (s *Store) CanonicalPhase() model.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.Phase
}

func (s *Store) Phase() model.Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.overlay != "" {
		return s.overlay
	}
	return s.session.Phase
}

func (s *Store) PendingPhase() (model.Phase, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.overlay, s.overlay != ""
}

func (s *Store) IsCurrentTurn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session.CurrentTurnPlayerID != "" && s.session.CurrentTurnPlayerID == s.localID
}

// ApplySession replaces the canonical session and drops the optimistic overlay.
func (s *Store) ApplySession(sess model.Session) {
	s.mu.Lock()
	sess.ID = s.session.ID
	s.session = sess
	s.overlay = ""
	s.mu.Unlock()
	s.notify(ChangeSession)
}

// SetOverlay records an optimistic phase ahead of the next refresh.
func (s *Store) SetOverlay(phase model.Phase) {
	s.mu.Lock()
	s.overlay = phase
	s.mu.Unlock()
	s.notify(ChangeSession)
}

// SetCurrentTurn tracks a turn change broadcast. It reports whether the id changed.
func (s *Store) SetCurrentTurn(playerID string) bool {
	s.mu.Lock()
	if s.session.CurrentTurnPlayerID == playerID {
		s.mu.Unlock()
		return false
	}
	s.session.CurrentTurnPlayerID = playerID
	s.mu.Unlock()
	s.notify(ChangeTurn)
	return true
}

func (s *Store) SetTimer(remaining int, paused bool) {
	s.mu.Lock()
	s.session.RemainingTime = remaining
	s.session.TimerPaused = paused
	s.mu.Unlock()
	s.notify(ChangeTimer)
}

// AddPlayers appends unseen players to the roster. Known players are never removed.
func (s *Store) AddPlayers(players ...model.Player) {
	added := false
	s.mu.Lock()
	for _, p := range players {
		if p.ID == "" {
			continue
		}
		if _, ok := s.players[p.ID]; !ok {
			s.order = append(s.order, p.ID)
			s.players[p.ID] = p
			added = true
			continue
		}
		if p.DisplayName != "" {
			s.players[p.ID] = p
		}
	}
	s.mu.Unlock()
	if added {
		s.notify(ChangePlayers)
	}
}

func (s *Store) Player(id string) (model.Player, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.players[id]
	return p, ok
}

// Players returns the roster in join order.
func (s *Store) Players() []model.Player {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Player, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.players[id])
	}
	return out
}

// OtherPlayers returns the roster without the local player.
func (s *Store) OtherPlayers() []model.Player {
	all := s.Players()
	out := make([]model.Player, 0, len(all))
	for _, p := range all {
		if p.ID != s.localID {
			out = append(out, p)
		}
	}
	return out
}

// DisplayName falls back to the id for unknown players.
func (s *Store) DisplayName(id string) string {
	if p, ok := s.Player(id); ok && p.DisplayName != "" {
		return p.DisplayName
	}
	return id
}

func (s *Store) Hand() []model.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Card(nil), s.hand...)
}

func (s *Store) SetHand(cards []model.Card) {
	s.mu.Lock()
	s.hand = append([]model.Card(nil), cards...)
	s.mu.Unlock()
	s.notify(ChangeHand)
}

// HandCards resolves ids against the hand. The second value lists unknown ids.
func (s *Store) HandCards(ids []string) ([]model.Card, []string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byID := make(map[string]model.Card, len(s.hand))
	for _, c := range s.hand {
		byID[c.ID] = c
	}
	var found []model.Card
	var missing []string
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			found = append(found, c)
		} else {
			missing = append(missing, id)
		}
	}
	return found, missing
}

// RemoveFromHand drops the given ids and returns the cards removed.
func (s *Store) RemoveFromHand(ids ...string) []model.Card {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	kept := s.hand[:0:0]
	var removed []model.Card
	for _, c := range s.hand {
		if _, ok := drop[c.ID]; ok {
			removed = append(removed, c)
			continue
		}
		kept = append(kept, c)
	}
	s.hand = kept
	s.mu.Unlock()

	if len(removed) > 0 {
		s.notify(ChangeHand)
	}
	return removed
}

func (s *Store) AddToHand(cards ...model.Card) {
	if len(cards) == 0 {
		return
	}
	s.mu.Lock()
	s.hand = append(s.hand, cards...)
	s.mu.Unlock()
	s.notify(ChangeHand)
}

// DiscardFromHand moves cards from the hand onto the discard pile in one step.
func (s *Store) DiscardFromHand(ids ...string) []model.Card {
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	s.mu.Lock()
	kept := s.hand[:0:0]
	var moved []model.Card
	for _, c := range s.hand {
		if _, ok := drop[c.ID]; ok {
			moved = append(moved, c)
			continue
		}
		kept = append(kept, c)
	}
	s.hand = kept
	s.discard = append(s.discard, moved...)
	s.mu.Unlock()

	if len(moved) > 0 {
		s.notify(ChangeHand)
		s.notify(ChangeDiscard)
	}
	return moved
}

func (s *Store) Draft() []model.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Card(nil), s.draft...)
}

func (s *Store) SetDraft(cards []model.Card) {
	s.mu.Lock()
	s.draft = append([]model.Card(nil), cards...)
	s.mu.Unlock()
	s.notify(ChangeDraft)
}

// PushDiscard records cards discarded by any player, newest last.
func (s *Store) PushDiscard(cards ...model.Card) {
	if len(cards) == 0 {
		return
	}
	s.mu.Lock()
	s.discard = append(s.discard, cards...)
	s.mu.Unlock()
	s.notify(ChangeDiscard)
}

// DiscardTop returns up to n of the most recent discards, newest first.
func (s *Store) DiscardTop(n int) []model.Card {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]model.Card, 0, n)
	for i := len(s.discard) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, s.discard[i])
	}
	return out
}

func (s *Store) SetSecrets(ownerID string, secrets []model.Secret) {
	s.mu.Lock()
	s.secrets[ownerID] = append([]model.Secret(nil), secrets...)
	s.mu.Unlock()
	s.notify(ChangeSecrets)
}

// UpsertSecret updates a single secret, appending it when unknown.
func (s *Store) UpsertSecret(secret model.Secret) {
	s.mu.Lock()
	list := s.secrets[secret.OwnerID]
	replaced := false
	for i := range list {
		if list[i].ID == secret.ID {
			list[i] = secret
			replaced = true
			break
		}
	}
	if !replaced {
		list = append(list, secret)
	}
	s.secrets[secret.OwnerID] = list
	s.mu.Unlock()
	s.notify(ChangeSecrets)
}

// Secrets returns the owner's secrets as seen by the local player.
func (s *Store) Secrets(ownerID string) []model.Secret {
	s.mu.RLock()
	defer s.mu.RUnlock()
	list := s.secrets[ownerID]
	out := make([]model.Secret, 0, len(list))
	for _, sec := range list {
		out = append(out, sec.VisibleTo(s.localID))
	}
	return out
}

func (s *Store) SetSets(sets []model.Set) {
	s.mu.Lock()
	s.sets = append([]model.Set(nil), sets...)
	s.mu.Unlock()
	s.notify(ChangeSets)
}

// AddSet records set, replacing a known set with the same id.
func (s *Store) AddSet(set model.Set) {
	s.mu.Lock()
	replaced := false
	for i := range s.sets {
		if s.sets[i].ID == set.ID {
			s.sets[i] = set
			replaced = true
			break
		}
	}
	if !replaced {
		s.sets = append(s.sets, set)
	}
	s.mu.Unlock()
	s.notify(ChangeSets)
}

func (s *Store) Sets() []model.Set {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Set(nil), s.sets...)
}

// View is a read-only copy of the mirrors for presentation.
type View struct {
	Session       model.Session             `json:"session"`
	IsCurrentTurn bool                      `json:"isCurrentTurn"`
	PendingPhase  model.Phase               `json:"pendingPhase,omitempty"`
	LocalPlayerID string                    `json:"localPlayerId"`
	Players       []model.Player            `json:"players"`
	Hand          []model.Card              `json:"hand"`
	Draft         []model.Card              `json:"draft"`
	DiscardTop    []model.Card              `json:"discardTop"`
	Sets          []model.Set               `json:"sets"`
	Secrets       map[string][]model.Secret `json:"secrets"`
}

func (s *Store) View(discardDepth int) View {
	pending, _ := s.PendingPhase()
	v := View{
		Session:       s.Session(),
		IsCurrentTurn: s.IsCurrentTurn(),
		PendingPhase:  pending,
		LocalPlayerID: s.localID,
		Players:       s.Players(),
		Hand:          s.Hand(),
		Draft:         s.Draft(),
		DiscardTop:    s.DiscardTop(discardDepth),
		Sets:          s.Sets(),
		Secrets:       make(map[string][]model.Secret),
	}
	for _, p := range v.Players {
		v.Secrets[p.ID] = s.Secrets(p.ID)
	}
	return v
}
