package testutil

import (
	"slices"

	"github.com/modweave/modweave/internal/tokens"
)

// RecordingToken is a static-style token that counts its self-updates.
// Tests use it to prove which tokens an update pass touched.
type RecordingToken struct {
	name    string
	scope   string
	mutable bool
	values  []string
	ready   bool
	updates int
}

// NewRecordingToken creates a recording token. It becomes ready with the
// given values on its first UpdateContext call.
func NewRecordingToken(name, scope string, mutable bool, values ...string) *RecordingToken {
	return &RecordingToken{
		name:    name,
		scope:   scope,
		mutable: mutable,
		values:  slices.Clone(values),
	}
}

// Updates returns how many times UpdateContext has been invoked.
func (t *RecordingToken) Updates() int { return t.updates }

// SetValues replaces the values reported after the next update.
func (t *RecordingToken) SetValues(values ...string) {
	t.values = slices.Clone(values)
}

func (t *RecordingToken) Name() string    { return t.name }
func (t *RecordingToken) Scope() string   { return t.scope }
func (t *RecordingToken) IsMutable() bool { return t.mutable }
func (t *RecordingToken) IsReady() bool   { return t.ready }

func (t *RecordingToken) GetValues(tokens.Input) []string {
	if !t.ready {
		return nil
	}
	return slices.Clone(t.values)
}

func (t *RecordingToken) TokensUsed() []tokens.Key { return nil }

func (t *RecordingToken) UpdateContext(tokens.Context) bool {
	t.updates++
	wasReady := t.ready
	t.ready = true
	return !wasReady
}
