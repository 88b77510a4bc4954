package commitmanager

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	grerr "github.com/utkarsh5026/grut/pkg/common/err"
	"github.com/utkarsh5026/grut/pkg/index"
	"github.com/utkarsh5026/grut/pkg/objects"
	"github.com/utkarsh5026/grut/pkg/refs"
	"github.com/utkarsh5026/grut/pkg/repository/layout"
	"github.com/utkarsh5026/grut/pkg/store"
)

type fixture struct {
	mgr   *Manager
	store store.ObjectStore
	index *index.Manager
	head  *refs.HeadManager
}

func setup(t *testing.T, opts Options) *fixture {
	t.Helper()

	sp := layout.SourcePath(t.TempDir())
	s, err := store.Open(store.BackendFile, sp.ObjectsPath().String(), store.DefaultOptions())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	idx := index.NewManager(sp.IndexPath())
	head := refs.NewHeadManager(sp.HeadPath())
	_, err = head.Init()
	require.NoError(t, err)

	return &fixture{
		mgr:   NewManager(s, idx, head, opts),
		store: s,
		index: idx,
		head:  head,
	}
}

func (f *fixture) stage(t *testing.T, path, content string) objects.Digest {
	t.Helper()
	d, err := f.store.Put([]byte(content))
	require.NoError(t, err)
	_, err = f.index.Stage(layout.RelativePath(path), d)
	require.NoError(t, err)
	return d
}

func countObjects(t *testing.T, s store.ObjectStore) int {
	t.Helper()
	n := 0
	require.NoError(t, s.ForEach(func(objects.Digest) error {
		n++
		return nil
	}))
	return n
}

func TestCreateCommit_RootAndChild(t *testing.T) {
	ctx := context.Background()
	f := setup(t, Options{})

	blob := f.stage(t, "a.txt", "hello\n")
	first, err := f.mgr.CreateCommit(ctx, CommitOptions{Message: "first"})
	require.NoError(t, err)
	assert.True(t, first.IsRoot())
	assert.Equal(t, []index.Entry{{Path: "a.txt", Digest: blob}}, first.Files)

	head, err := f.head.Read()
	require.NoError(t, err)
	assert.Equal(t, first.Digest, head)

	entries, err := f.index.Current()
	require.NoError(t, err)
	assert.Empty(t, entries, "index is cleared after commit")

	f.stage(t, "a.txt", "hello\nworld\n")
	second, err := f.mgr.CreateCommit(ctx, CommitOptions{Message: "second"})
	require.NoError(t, err)
	assert.Equal(t, first.Digest, second.Parent)

	stored, err := f.mgr.GetCommit(ctx, second.Digest)
	require.NoError(t, err)
	assert.Equal(t, "second", stored.Message)
	assert.Equal(t, first.Digest, stored.Parent)
}

func TestCreateCommit_DigestMatchesStoredBytes(t *testing.T) {
	f := setup(t, Options{})
	f.stage(t, "a.txt", "x")

	c, err := f.mgr.CreateCommit(context.Background(), CommitOptions{Message: "m"})
	require.NoError(t, err)

	data, err := f.store.Get(c.Digest)
	require.NoError(t, err)
	assert.Equal(t, objects.Sum(data), c.Digest)
}

func TestCreateCommit_NothingStaged(t *testing.T) {
	f := setup(t, Options{})
	before := countObjects(t, f.store)

	_, err := f.mgr.CreateCommit(context.Background(), CommitOptions{Message: "empty"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, grerr.ErrNothingToCommit))
	assert.True(t, errors.Is(err, ErrNoChanges))

	assert.Equal(t, before, countObjects(t, f.store), "no object written")
	head, err := f.head.Read()
	require.NoError(t, err)
	assert.True(t, head.IsZero(), "HEAD unchanged")
}

func TestCreateCommit_NothingStagedWinsOverEmptyMessage(t *testing.T) {
	f := setup(t, Options{})

	_, err := f.mgr.CreateCommit(context.Background(), CommitOptions{Message: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, grerr.ErrNothingToCommit))
	assert.False(t, errors.Is(err, grerr.ErrInvalidInput))
	assert.Zero(t, countObjects(t, f.store))
}

func TestCreateCommit_EmptyMessage(t *testing.T) {
	f := setup(t, Options{})
	f.stage(t, "a.txt", "x")

	_, err := f.mgr.CreateCommit(context.Background(), CommitOptions{Message: ""})
	require.Error(t, err)
	assert.True(t, errors.Is(err, grerr.ErrInvalidInput))

	entries, err := f.index.Current()
	require.NoError(t, err)
	assert.Len(t, entries, 1, "index untouched")
}

func TestCreateCommit_CancelledContext(t *testing.T) {
	f := setup(t, Options{})
	f.stage(t, "a.txt", "x")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.mgr.CreateCommit(ctx, CommitOptions{Message: "m"})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestGetCommit_Errors(t *testing.T) {
	ctx := context.Background()
	f := setup(t, Options{})

	_, err := f.mgr.GetCommit(ctx, objects.Sum([]byte("absent")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, grerr.ErrNotFound))

	blob, err := f.store.Put([]byte("just a file\n"))
	require.NoError(t, err)
	_, err = f.mgr.GetCommit(ctx, blob)
	require.Error(t, err)
	assert.True(t, errors.Is(err, grerr.ErrCorruptHistory))

	_, err = f.mgr.GetCommit(ctx, "xyz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, grerr.ErrInvalidInput))
}

func TestGetHistory_ChainIntegrity(t *testing.T) {
	ctx := context.Background()
	f := setup(t, Options{})

	const n = 5
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	var digests []objects.Digest
	for i := 0; i < n; i++ {
		f.stage(t, "f.txt", fmt.Sprintf("version %d\n", i))
		c, err := f.mgr.CreateCommit(ctx, CommitOptions{
			Message:   fmt.Sprintf("commit %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Minute),
		})
		require.NoError(t, err)
		digests = append(digests, c.Digest)
	}

	history, err := f.mgr.GetHistory(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, history, n)

	for i, c := range history {
		assert.Equal(t, digests[n-1-i], c.Digest)
		assert.Equal(t, fmt.Sprintf("commit %d", n-1-i), c.Message)
	}
	assert.True(t, history[n-1].IsRoot())

	limited, err := f.mgr.GetHistory(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, digests[n-1], limited[0].Digest)

	fromMiddle, err := f.mgr.GetHistory(ctx, digests[2], 0)
	require.NoError(t, err)
	assert.Len(t, fromMiddle, 3)
}

func TestGetHistory_EmptyRepository(t *testing.T) {
	f := setup(t, Options{})

	history, err := f.mgr.GetHistory(context.Background(), "", 0)
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestWalker_IsRestartable(t *testing.T) {
	ctx := context.Background()
	f := setup(t, Options{})
	f.stage(t, "a.txt", "1")
	_, err := f.mgr.CreateCommit(ctx, CommitOptions{Message: "one"})
	require.NoError(t, err)

	for range 2 {
		w, err := f.mgr.Walk("")
		require.NoError(t, err)

		c, err := w.Next(ctx)
		require.NoError(t, err)
		assert.Equal(t, "one", c.Message)

		_, err = w.Next(ctx)
		assert.ErrorIs(t, err, io.EOF)
		assert.Equal(t, 1, w.Depth())
	}
}

// memStore lets tests place arbitrary bytes under arbitrary digests, which
// is the only way to build a cyclic parent chain.
type memStore map[objects.Digest][]byte

func (s memStore) Put(content []byte) (objects.Digest, error) {
	d := objects.Sum(content)
	s[d] = content
	return d, nil
}

func (s memStore) Get(d objects.Digest) ([]byte, error) {
	data, ok := s[d]
	if !ok {
		return nil, grerr.New("test", grerr.CodeNotFound, "get", d.String(), nil)
	}
	return data, nil
}

func (s memStore) Has(d objects.Digest) (bool, error) {
	_, ok := s[d]
	return ok, nil
}

func (s memStore) ForEach(fn func(objects.Digest) error) error {
	for d := range s {
		if err := fn(d); err != nil {
			return err
		}
	}
	return nil
}

func (s memStore) Close() error { return nil }

func rawCommit(parent objects.Digest) []byte {
	p := "null"
	if !parent.IsZero() {
		p = `"` + parent.String() + `"`
	}
	return []byte(`{"timestamp":"2024-01-01T00:00:00Z","message":"m","parent":` + p + `,"files":[]}`)
}

func TestWalker_CycleIsCorruptHistory(t *testing.T) {
	s := memStore{}
	a := objects.Sum([]byte("a"))
	b := objects.Sum([]byte("b"))
	s[a] = rawCommit(b)
	s[b] = rawCommit(a)

	sp := layout.SourcePath(t.TempDir())
	mgr := NewManager(s, index.NewManager(sp.IndexPath()), refs.NewHeadManager(sp.HeadPath()), Options{})

	done := make(chan error, 1)
	go func() {
		_, err := mgr.GetHistory(context.Background(), a, 0)
		done <- err
	}()

	select {
	case err := <-done:
		require.Error(t, err)
		assert.True(t, errors.Is(err, grerr.ErrCorruptHistory))
	case <-time.After(5 * time.Second):
		t.Fatal("walk did not terminate on a cyclic chain")
	}
}

func TestWalker_SelfLoop(t *testing.T) {
	s := memStore{}
	a := objects.Sum([]byte("a"))
	s[a] = rawCommit(a)

	sp := layout.SourcePath(t.TempDir())
	mgr := NewManager(s, index.NewManager(sp.IndexPath()), refs.NewHeadManager(sp.HeadPath()), Options{})

	_, err := mgr.GetHistory(context.Background(), a, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, grerr.ErrCorruptHistory))
}

func TestWalker_DepthBound(t *testing.T) {
	ctx := context.Background()
	f := setup(t, Options{MaxDepth: 2})

	for i := range 3 {
		f.stage(t, "a.txt", fmt.Sprint(i))
		_, err := f.mgr.CreateCommit(ctx, CommitOptions{Message: fmt.Sprint(i)})
		require.NoError(t, err)
	}

	limited, err := f.mgr.GetHistory(ctx, "", 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	_, err = f.mgr.GetHistory(ctx, "", 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, grerr.ErrCorruptHistory))
}

func TestWalker_MissingParent(t *testing.T) {
	s := memStore{}
	missing := objects.Sum([]byte("gone"))
	child, err := s.Put(rawCommit(missing))
	require.NoError(t, err)

	sp := layout.SourcePath(t.TempDir())
	mgr := NewManager(s, index.NewManager(sp.IndexPath()), refs.NewHeadManager(sp.HeadPath()), Options{})

	_, err = mgr.GetHistory(context.Background(), child, 0)
	require.Error(t, err)
	assert.True(t, errors.Is(err, grerr.ErrCorruptHistory))
	assert.True(t, errors.Is(err, grerr.ErrNotFound))
}
