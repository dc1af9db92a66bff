package service

import (
	"context"
	"strings"
	"sync"
	"unicode/utf8"

	"settingshub/internal/gateway"
	"settingshub/internal/models"
)

// Draft is the editable slice of a profile. It can only change through
// the explicit operations below, so it is never over-length and never
// carries more than models.MaxTags entries.
type Draft struct {
	Bio  string   `json:"bio"`
	Tags []string `json:"profession_tags"`
}

// ProfileView pairs the last server-loaded profile with the current
// draft.
type ProfileView struct {
	Profile models.Profile `json:"profile"`
	Draft   Draft          `json:"draft"`
}

type profileState struct {
	profile models.Profile
	draft   Draft
	loaded  bool
}

// ProfileService keeps one draft per identity. Drafts are replaced
// wholesale on every successful load and discarded only with the
// process; a remote failure leaves the previous draft untouched.
type ProfileService struct {
	users gateway.Users

	mu     sync.Mutex
	states map[string]*profileState
}

func NewProfileService(users gateway.Users) *ProfileService {
	return &ProfileService{users: users, states: make(map[string]*profileState)}
}

var _ Profile = (*ProfileService)(nil)

func (s *ProfileService) state(did string) *profileState {
	st, ok := s.states[did]
	if !ok {
		st = &profileState{}
		s.states[did] = st
	}
	return st
}

// Load fetches the profile and resets the draft from the server state.
func (s *ProfileService) Load(ctx context.Context, token, did string) (ProfileView, error) {
	p, err := s.users.GetProfile(ctx, token)
	if err != nil {
		return ProfileView{}, &RemoteError{Kind: KindFetch, Fallback: "failed to load profile", Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(did)
	st.profile = p
	st.draft = Draft{Bio: p.Bio, Tags: append([]string(nil), p.ProfessionTags...)}
	st.loaded = true
	return ProfileView{Profile: st.profile, Draft: cloneDraft(st.draft)}, nil
}

// View returns the current draft, loading it first if this identity has
// no state yet.
func (s *ProfileService) View(ctx context.Context, token, did string) (ProfileView, error) {
	s.mu.Lock()
	if st, ok := s.states[did]; ok && st.loaded {
		v := ProfileView{Profile: st.profile, Draft: cloneDraft(st.draft)}
		s.mu.Unlock()
		return v, nil
	}
	s.mu.Unlock()
	return s.Load(ctx, token, did)
}

// SetBio replaces the draft bio. Over-length input is rejected whole:
// the stored bio is left exactly as it was.
func (s *ProfileService) SetBio(did, bio string) (Draft, error) {
	if utf8.RuneCountInString(bio) > models.MaxBioLen {
		return Draft{}, &ValidationError{Reason: ReasonTooLong}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(did)
	st.draft.Bio = bio
	return cloneDraft(st.draft), nil
}

// ToggleTag removes a present tag (always allowed) or adds an absent
// one while under the cap.
func (s *ProfileService) ToggleTag(did, tag string) (Draft, error) {
	tag = strings.TrimSpace(tag)
	if tag == "" {
		return Draft{}, &ValidationError{Reason: ReasonEmpty}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(did)
	if removed := removeTag(&st.draft, tag); removed {
		return cloneDraft(st.draft), nil
	}
	if len(st.draft.Tags) >= models.MaxTags {
		return Draft{}, &ValidationError{Reason: ReasonLimit}
	}
	st.draft.Tags = append(st.draft.Tags, tag)
	return cloneDraft(st.draft), nil
}

// AddCustomTag appends a free-form tag. The duplicate check runs
// against raw tag values, predefined ids included, not display labels.
func (s *ProfileService) AddCustomTag(did, raw string) (Draft, error) {
	tag := strings.TrimSpace(raw)
	if tag == "" {
		return Draft{}, &ValidationError{Reason: ReasonEmpty}
	}
	if utf8.RuneCountInString(tag) > models.MaxCustomTagLen {
		return Draft{}, &ValidationError{Reason: ReasonTooLong}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(did)
	for _, t := range st.draft.Tags {
		if t == tag {
			return Draft{}, &ValidationError{Reason: ReasonDuplicate}
		}
	}
	if len(st.draft.Tags) >= models.MaxTags {
		return Draft{}, &ValidationError{Reason: ReasonLimit}
	}
	st.draft.Tags = append(st.draft.Tags, tag)
	return cloneDraft(st.draft), nil
}

// RemoveTag drops a tag unconditionally; removal is always safe.
func (s *ProfileService) RemoveTag(did, tag string) (Draft, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st := s.state(did)
	removeTag(&st.draft, tag)
	return cloneDraft(st.draft), nil
}

// Submit sends the draft as a partial update, then reloads so local
// state reconciles with whatever the server normalized or rejected.
func (s *ProfileService) Submit(ctx context.Context, token, did string) (ProfileView, error) {
	s.mu.Lock()
	st := s.state(did)
	update := gateway.ProfileUpdate{Bio: st.draft.Bio, ProfessionTags: append([]string(nil), st.draft.Tags...)}
	s.mu.Unlock()

	if _, err := s.users.UpdateProfile(ctx, token, update); err != nil {
		return ProfileView{}, &RemoteError{Kind: KindSubmit, Fallback: "failed to save profile", Err: err}
	}
	return s.Load(ctx, token, did)
}

func removeTag(d *Draft, tag string) bool {
	for i, t := range d.Tags {
		if t == tag {
			d.Tags = append(d.Tags[:i], d.Tags[i+1:]...)
			return true
		}
	}
	return false
}

func cloneDraft(d Draft) Draft {
	return Draft{Bio: d.Bio, Tags: append([]string(nil), d.Tags...)}
}
