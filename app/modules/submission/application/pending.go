package submissionservice

import (
	"sync"

	"github.com/google/uuid"

	submissiondomain "github.com/TanzimK12/pvm-kingdom/app/modules/submission/domain"
)

// PendingStore tracks live submissions. A submission starts in the awaiting
// set, keyed by its uuid, until the gateway confirms the approval message was
// posted; it then moves to the pending set keyed by the approval message id.
//
// Decisions for a message id serialize on a per-id mutex so one of two racing
// approvers wins and the other observes the terminal state.
type PendingStore struct {
	mu       sync.RWMutex
	awaiting map[uuid.UUID]*submissiondomain.Submission
	pending  map[string]*submissiondomain.Submission
	locks    map[string]*sync.Mutex
}

// NewPendingStore creates an empty store.
func NewPendingStore() *PendingStore {
	return &PendingStore{
		awaiting: make(map[uuid.UUID]*submissiondomain.Submission),
		pending:  make(map[string]*submissiondomain.Submission),
		locks:    make(map[string]*sync.Mutex),
	}
}

// TrackAwaiting records a submission whose approval message is not posted yet.
func (p *PendingStore) TrackAwaiting(sub *submissiondomain.Submission) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.awaiting[sub.ID] = sub
}

// Activate moves a submission from awaiting to pending under the approval
// message id the gateway reported. Unknown ids return false; the posted
// event may be a replay.
func (p *PendingStore) Activate(submissionID uuid.UUID, messageID string) (*submissiondomain.Submission, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	sub, ok := p.awaiting[submissionID]
	if !ok {
		return nil, false
	}
	delete(p.awaiting, submissionID)
	sub.MessageID = messageID
	p.pending[messageID] = sub
	return sub, true
}

// Get returns the pending submission for an approval message id.
func (p *PendingStore) Get(messageID string) (*submissiondomain.Submission, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	sub, ok := p.pending[messageID]
	return sub, ok
}

// Remove drops a decided submission and its decision lock.
func (p *PendingStore) Remove(messageID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pending, messageID)
	delete(p.locks, messageID)
}

// DecisionLock returns the mutex serializing decisions for a message id.
func (p *PendingStore) DecisionLock(messageID string) *sync.Mutex {
	p.mu.Lock()
	defer p.mu.Unlock()
	l, ok := p.locks[messageID]
	if !ok {
		l = &sync.Mutex{}
		p.locks[messageID] = l
	}
	return l
}

// ForgetLock drops the decision lock for a message id with no pending
// submission. Reactions land on arbitrary messages; without this the lock
// map would grow by one entry per reaction, forever.
func (p *PendingStore) ForgetLock(messageID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.pending[messageID]; !ok {
		delete(p.locks, messageID)
	}
}

// Counts reports awaiting and pending sizes, for health reporting.
func (p *PendingStore) Counts() (awaiting, pending int) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.awaiting), len(p.pending)
}
