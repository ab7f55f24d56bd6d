// Package session holds the per-user console state: the role gate that
// resolves identity to an effective subject, the cache of last-known-good
// collections for that subject, and the mutation coordinator that keeps the
// cache equal to the post-mutation remote truth. Role and ownership checks
// live here once, instead of being re-implemented per handler.
package session

import (
	"errors"
	"sync"

	"fittrack/coach-app/internal/domain"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// State is the gate's position in the session lifecycle.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAuthenticating  State = "authenticating"
	// StateNoProfile: authentication succeeded but no profile exists and the
	// one self-healing provisioning attempt failed. Terminal for the session.
	StateNoProfile     State = "authenticated-no-profile"
	StateProfileLoaded State = "authenticated-profile-loaded"
)

var (
	ErrNotAuthenticated   = errors.New("session is not authenticated")
	ErrInvalidTransition  = errors.New("invalid session state transition")
	ErrNoSubjectSelected  = errors.New("no student selected")
	ErrStudentNotLinked   = errors.New("student is not linked to this professional")
	ErrNotPermitted       = errors.New("role does not permit this mutation")
	ErrProfileUnavailable = errors.New("profile could not be resolved for this session")
)

// Gate tracks one signed-in identity's session: lifecycle state, the loaded
// profile, the selected student (professionals only), and the cached
// collections of the current effective subject.
//
// The generation counter fences asynchronous fetches: it advances whenever
// the effective subject changes or the session ends, and a fetch result is
// applied only if the generation it started under is still current.
type Gate struct {
	mu              sync.Mutex
	state           State
	profile         *domain.User
	selectedStudent primitive.ObjectID
	generation      uint64
	snapshot        Snapshot
}

// NewGate returns a gate in the unauthenticated state.
func NewGate() *Gate {
	return &Gate{state: StateUnauthenticated}
}

// State returns the current lifecycle state.
func (g *Gate) State() State {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// BeginAuth marks the start of authentication.
func (g *Gate) BeginAuth() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateUnauthenticated {
		return ErrInvalidTransition
	}
	g.state = StateAuthenticating
	return nil
}

// CompleteAuth installs the resolved profile and moves to profile-loaded.
// Called after login resolves (or self-heals) the profile.
func (g *Gate) CompleteAuth(profile *domain.User) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateAuthenticating && g.state != StateNoProfile {
		return ErrInvalidTransition
	}
	if profile == nil {
		return ErrProfileUnavailable
	}
	g.profile = profile
	g.state = StateProfileLoaded
	g.generation++
	g.snapshot = Snapshot{}
	if profile.IsStudent() {
		g.snapshot.SubjectID = profile.ID
	}
	return nil
}

// MarkProfileMissing records that authentication succeeded but the profile
// could not be resolved even after the provisioning attempt.
func (g *Gate) MarkProfileMissing() error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateAuthenticating {
		return ErrInvalidTransition
	}
	g.state = StateNoProfile
	return nil
}

// Profile returns the loaded profile, or an error before profile-loaded.
func (g *Gate) Profile() (*domain.User, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateProfileLoaded || g.profile == nil {
		return nil, ErrNotAuthenticated
	}
	return g.profile, nil
}

// SelectStudent makes the given linked student the effective subject.
// Only professionals may select; the student must be currently linked.
func (g *Gate) SelectStudent(studentID primitive.ObjectID) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateProfileLoaded {
		return ErrNotAuthenticated
	}
	if !g.profile.IsProfessional() {
		return ErrNotPermitted
	}
	if !linked(g.profile, studentID) {
		return ErrStudentNotLinked
	}
	if g.selectedStudent == studentID {
		return nil
	}
	g.selectedStudent = studentID
	g.generation++
	g.snapshot = Snapshot{SubjectID: studentID}
	return nil
}

// ClearStudent deselects the current student, if any.
func (g *Gate) ClearStudent() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.selectedStudent == primitive.NilObjectID {
		return
	}
	g.selectedStudent = primitive.NilObjectID
	g.generation++
	g.snapshot = Snapshot{}
}

// EffectiveSubject resolves the subject id all fetchers are parameterized by:
// a student is always their own subject; a professional's subject is the
// selected student. ok is false when a professional has none selected.
func (g *Gate) EffectiveSubject() (id primitive.ObjectID, ok bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state != StateProfileLoaded {
		return primitive.NilObjectID, false
	}
	if g.profile.IsStudent() {
		return g.profile.ID, true
	}
	if g.selectedStudent == primitive.NilObjectID {
		return primitive.NilObjectID, false
	}
	return g.selectedStudent, true
}

// Logout returns to unauthenticated and discards all cached collections so
// nothing leaks into the next identity's initial render.
func (g *Gate) Logout() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.state = StateUnauthenticated
	g.profile = nil
	g.selectedStudent = primitive.NilObjectID
	g.generation++
	g.snapshot = Snapshot{}
}

// BeginFetch captures the generation token a fetch must present when it
// completes. Call before issuing the remote query.
func (g *Gate) BeginFetch() uint64 {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.generation
}

// ApplyFetch applies a completed fetch to the cached snapshot only if the
// session's effective subject has not changed since BeginFetch. Stale
// completions are discarded, never applied; the return reports which.
func (g *Gate) ApplyFetch(gen uint64, apply func(*Snapshot)) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if gen != g.generation {
		return false
	}
	apply(&g.snapshot)
	return true
}

// View runs read against the current snapshot under the lock.
func (g *Gate) View(read func(Snapshot)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	read(g.snapshot)
}

// reconcile applies a confirmed mutation to the snapshot; unlike ApplyFetch
// it is not generation-fenced because it runs synchronously with the
// mutation that just succeeded, but it still only touches the snapshot when
// the mutated owner is the cached subject.
func (g *Gate) reconcile(ownerID primitive.ObjectID, apply func(*Snapshot)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.snapshot.SubjectID != ownerID {
		return
	}
	apply(&g.snapshot)
}

func linked(professional *domain.User, studentID primitive.ObjectID) bool {
	for _, id := range professional.StudentIDs {
		if id == studentID {
			return true
		}
	}
	return false
}
