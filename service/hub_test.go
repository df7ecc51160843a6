package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeService struct {
	name    string
	deps    []string
	initErr error
	log     *[]string
	args    []any
}

func (f *fakeService) Name() string           { return f.name }
func (f *fakeService) Dependencies() []string { return f.deps }

func (f *fakeService) Init(args ...any) error {
	f.args = args
	*f.log = append(*f.log, "init:"+f.name)
	return f.initErr
}

func (f *fakeService) Start() error {
	*f.log = append(*f.log, "start:"+f.name)
	return nil
}

func (f *fakeService) Stop() error {
	*f.log = append(*f.log, "stop:"+f.name)
	return nil
}

func (f *fakeService) Contribute(publish ResourcePublisher) {
	publish(f.name)
}

func TestHub_DependencyOrder(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "spectate", deps: []string{"ledger"}, log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "ledger", log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "audio", log: &log}))

	require.NoError(t, h.InitAll(map[string][]any{"ledger": {"path.db"}}))
	require.NoError(t, h.StartAll())
	require.NoError(t, h.StopAll())

	assert.Equal(t, []string{
		"init:audio", "init:ledger", "init:spectate",
		"start:audio", "start:ledger", "start:spectate",
		"stop:spectate", "stop:ledger", "stop:audio",
	}, log)

	ledger := MustGet[*fakeService](h, "ledger")
	assert.Equal(t, []any{"path.db"}, ledger.args)
}

func TestHub_DuplicateAndMissing(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "a", deps: []string{"ghost"}, log: &log}))
	assert.Error(t, h.Register(&fakeService{name: "a", log: &log}))
	assert.Error(t, h.InitAll(nil))
}

func TestHub_Cycle(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "a", deps: []string{"b"}, log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "b", deps: []string{"a"}, log: &log}))
	assert.ErrorIs(t, h.InitAll(nil), ErrCycle)
}

func TestHub_InitRollback(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "a", log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "b", deps: []string{"a"}, initErr: errors.New("boom"), log: &log}))

	err := h.InitAll(nil)
	require.Error(t, err)
	assert.Equal(t, []string{"init:a", "init:b", "stop:a"}, log)
}

func TestHub_ContributeAll(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&fakeService{name: "b", log: &log}))
	require.NoError(t, h.Register(&fakeService{name: "a", log: &log}))

	var got []any
	h.ContributeAll(func(r any) { got = append(got, r) })
	assert.Equal(t, []any{"a", "b"}, got)
}

func TestHub_MustGetPanics(t *testing.T) {
	h := NewHub()
	assert.Panics(t, func() { MustGet[*fakeService](h, "nope") })
}

type degradedService struct {
	fakeService
	off bool
}

func (d *degradedService) IsDisabled() bool { return d.off }

func TestHub_Disabled(t *testing.T) {
	var log []string
	h := NewHub()
	require.NoError(t, h.Register(&degradedService{fakeService: fakeService{name: "replay", log: &log}, off: true}))
	require.NoError(t, h.Register(&degradedService{fakeService: fakeService{name: "ledger", log: &log}}))
	require.NoError(t, h.Register(&fakeService{name: "audio", log: &log}))

	assert.Equal(t, []string{"replay"}, h.Disabled())
}
