package dialog

import (
	"strconv"

	"github.com/dmitrijs2005/usersadmin/internal/client/models"
)

// Phase is the submission lifecycle of the dialog.
type Phase int

const (
	// Idle: the form is editable and nothing is in flight.
	Idle Phase = iota
	// Submitting: inputs are disabled while the backend call runs.
	Submitting
	// Resolved: the last attempt failed; errors and values are restored and
	// the form is editable again.
	Resolved
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Submitting:
		return "submitting"
	case Resolved:
		return "resolved"
	}
	return "unknown"
}

// SubmissionState is what the dialog remembers about its last attempt.
type SubmissionState struct {
	Values  models.FormFields
	Errors  models.FieldErrors
	Pending bool
}

func (s SubmissionState) clone() SubmissionState {
	s.Errors = s.Errors.Clone()
	return s
}

type model struct {
	phase  Phase
	open   bool
	key    string
	target *models.User
	state  SubmissionState
	// gen changes on every open and close; results carrying an older gen
	// belong to a dialog instance that no longer exists.
	gen uint64

	showPassword bool
	showConfirm  bool
}

type msg interface{ isMsg() }

type openedMsg struct{ target *models.User }

type submitRequestedMsg struct{ fields models.FormFields }

type submitSucceededMsg struct{ gen uint64 }

type submitFailedMsg struct {
	gen   uint64
	state SubmissionState
}

type closedMsg struct{}

func (openedMsg) isMsg()          {}
func (submitRequestedMsg) isMsg() {}
func (submitSucceededMsg) isMsg() {}
func (submitFailedMsg) isMsg()    {}
func (closedMsg) isMsg()          {}

func targetKey(u *models.User) string {
	if u == nil {
		return "new"
	}
	return "user:" + strconv.FormatInt(u.ID, 10)
}

func freshState(target *models.User) SubmissionState {
	if target == nil {
		return SubmissionState{}
	}
	return SubmissionState{Values: models.FormFields{Username: target.Username}}
}

// reduce is the whole state machine. It never mutates m.
func reduce(m model, in msg) model {
	switch in := in.(type) {
	case openedMsg:
		key := targetKey(in.target)
		if key != m.key {
			m.key = key
			m.state = freshState(in.target)
		}
		if in.target != nil {
			t := *in.target
			m.target = &t
		} else {
			m.target = nil
		}
		m.state.Pending = false
		m.state.Values.Password = ""
		m.state.Values.ConfirmPassword = ""
		m.open = true
		m.phase = Idle
		m.showPassword, m.showConfirm = false, false
		m.gen++

	case submitRequestedMsg:
		if !m.open || m.phase == Submitting {
			return m
		}
		m.phase = Submitting
		m.state = SubmissionState{Values: in.fields, Errors: m.state.Errors, Pending: true}

	case submitSucceededMsg:
		if in.gen != m.gen {
			return m
		}
		m.open = false
		m.phase = Idle
		m.state = SubmissionState{}
		m.key = ""
		m.target = nil
		m.gen++

	case submitFailedMsg:
		if in.gen != m.gen {
			return m
		}
		m.phase = Resolved
		m.state = in.state.clone()
		m.state.Pending = false

	case closedMsg:
		if !m.open {
			return m
		}
		m.open = false
		m.phase = Idle
		m.state.Pending = false
		m.gen++
	}
	return m
}
