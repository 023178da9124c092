package editor

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"resume-builder/internal/model"
)

func threeEdits(n int) Mutator {
	return func(d *model.ResumeData) {
		d.Sections.Experience.Items = append(d.Sections.Experience.Items,
			&model.ExperienceItem{Base: model.Base{ID: "e" + string(rune('a'+n))}, Company: "Acme"})
		d.Sections.Skills.Items = append(d.Sections.Skills.Items,
			&model.SkillItem{Base: model.Base{ID: "s" + string(rune('a'+n))}, Name: "Go", Keywords: []string{}})
		d.Summary.Content = "edit"
	}
}

func TestApplyPublishesNewVersion(t *testing.T) {
	seed := model.Default()
	s := New(seed)
	require.Equal(t, uint64(0), s.Version())

	snap := s.Apply(threeEdits(0))
	assert.Equal(t, uint64(1), snap.Version)
	assert.Len(t, snap.Data.Sections.Experience.Items, 1)
	assert.Len(t, snap.Data.Sections.Skills.Items, 1)
	assert.Equal(t, "edit", snap.Data.Summary.Content)

	// the seed passed in is never aliased
	assert.Empty(t, seed.Sections.Experience.Items)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New(model.Sample())
	snap := s.Snapshot()
	snap.Data.Sections.Experience.Items[0].Company = "mutated"
	snap.Data.Summary.Content = "mutated"

	again := s.Snapshot()
	assert.NotEqual(t, "mutated", again.Data.Sections.Experience.Items[0].Company)
	assert.NotEqual(t, "mutated", again.Data.Summary.Content)
}

func TestReadersNeverSeeIntermediateState(t *testing.T) {
	s := New(model.Default())
	const writes = 50

	var wg sync.WaitGroup
	stop := make(chan struct{})
	errs := make(chan string, 1)

	for r := 0; r < 4; r++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-stop:
					return
				default:
				}
				snap := s.Snapshot()
				exp := len(snap.Data.Sections.Experience.Items)
				skills := len(snap.Data.Sections.Skills.Items)
				edited := snap.Data.Summary.Content == "edit"
				if exp != skills || uint64(exp) != snap.Version || (exp > 0) != edited {
					select {
					case errs <- "intermediate state observed":
					default:
					}
					return
				}
			}
		}()
	}

	for i := 0; i < writes; i++ {
		s.Apply(threeEdits(i))
	}
	close(stop)
	wg.Wait()

	select {
	case msg := <-errs:
		t.Fatal(msg)
	default:
	}
	assert.Equal(t, uint64(writes), s.Version())
}

func TestConcurrentWritersAreSerialized(t *testing.T) {
	s := New(model.Default())
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Apply(func(d *model.ResumeData) {
				d.Sections.Interests.Items = append(d.Sections.Interests.Items,
					&model.InterestItem{Base: model.Base{ID: string(rune('A' + i))}, Keywords: []string{}})
			})
		}(i)
	}
	wg.Wait()
	snap := s.Snapshot()
	assert.Equal(t, uint64(20), snap.Version)
	assert.Len(t, snap.Data.Sections.Interests.Items, 20)
}

func TestListenersRunOncePerCommitInOrder(t *testing.T) {
	s := New(model.Default())
	var got []uint64
	cancel := s.Subscribe(func(snap Snapshot) { got = append(got, snap.Version) })

	s.Apply(threeEdits(0))
	s.Apply(threeEdits(1))
	s.Apply(threeEdits(2))
	assert.Equal(t, []uint64{1, 2, 3}, got)

	cancel()
	s.Apply(threeEdits(3))
	assert.Len(t, got, 3)
}

func TestMutatorRunsExactlyOnce(t *testing.T) {
	s := New(model.Default())
	calls := 0
	s.Apply(func(*model.ResumeData) { calls++ })
	assert.Equal(t, 1, calls)
}

func TestPanickingMutatorLeavesStateUnchanged(t *testing.T) {
	s := New(model.Sample())
	before, _ := json.Marshal(s.Snapshot().Data)
	notified := false
	s.Subscribe(func(Snapshot) { notified = true })

	assert.Panics(t, func() {
		s.Apply(func(d *model.ResumeData) {
			d.Summary.Content = "half done"
			panic("boom")
		})
	})

	after, _ := json.Marshal(s.Snapshot().Data)
	assert.JSONEq(t, string(before), string(after))
	assert.Equal(t, uint64(0), s.Version())
	assert.False(t, notified)

	// the store is still usable
	s.Apply(threeEdits(0))
	assert.Equal(t, uint64(1), s.Version())
}

func TestApplyAtRejectsStaleWrites(t *testing.T) {
	s := New(model.Default())
	base := s.Version()

	s.Apply(threeEdits(0))

	ran := false
	_, err := s.ApplyAt(base, func(d *model.ResumeData) {
		ran = true
		d.Summary.Content = "late AI result"
	})
	assert.ErrorIs(t, err, ErrStale)
	assert.False(t, ran)
	assert.Equal(t, "edit", s.Snapshot().Data.Summary.Content)

	snap, err := s.ApplyAt(s.Version(), func(d *model.ResumeData) { d.Summary.Content = "fresh" })
	require.NoError(t, err)
	assert.Equal(t, uint64(2), snap.Version)
	assert.Equal(t, "fresh", snap.Data.Summary.Content)
}

func TestReplace(t *testing.T) {
	s := New(model.Default())
	sample := model.Sample()
	snap := s.Replace(sample)
	assert.Equal(t, uint64(1), snap.Version)
	assert.Equal(t, sample.Basics.Name, snap.Data.Basics.Name)

	sample.Basics.Name = "changed after replace"
	assert.NotEqual(t, "changed after replace", s.Snapshot().Data.Basics.Name)
}

func TestEditDiscardsUnchangedAndFailedDrafts(t *testing.T) {
	s := New(model.Sample())
	notified := 0
	s.Subscribe(func(Snapshot) { notified++ })

	snap, changed, err := s.Edit(func(d *model.ResumeData) (bool, error) {
		d.Summary.Content = "scratch"
		return false, nil
	})
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Equal(t, uint64(0), snap.Version)
	assert.NotEqual(t, "scratch", s.Snapshot().Data.Summary.Content)

	boom := errors.New("boom")
	_, changed, err = s.Edit(func(d *model.ResumeData) (bool, error) {
		d.Summary.Content = "scratch"
		return true, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, changed)
	assert.Equal(t, uint64(0), s.Version())
	assert.Zero(t, notified)

	snap, changed, err = s.Edit(func(d *model.ResumeData) (bool, error) {
		d.Summary.Content = "kept"
		return true, nil
	})
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Equal(t, uint64(1), snap.Version)
	assert.Equal(t, 1, notified)
}

func TestCommittedStateIgnoresPointersKeptByTheWriter(t *testing.T) {
	s := New(model.Default())
	kept := &model.ExperienceItem{Base: model.Base{ID: "e1"}, Company: "Acme"}

	snap := s.Apply(func(d *model.ResumeData) {
		d.Sections.Experience.Items = append(d.Sections.Experience.Items, kept)
	})
	require.Equal(t, uint64(1), snap.Version)

	kept.Company = "changed after commit"
	cur := s.Snapshot()
	assert.Equal(t, uint64(1), cur.Version)
	require.Len(t, cur.Data.Sections.Experience.Items, 1)
	assert.Equal(t, "Acme", cur.Data.Sections.Experience.Items[0].Company)
}

func TestPrecommitFailureDiscardsDraft(t *testing.T) {
	boom := errors.New("save failed")
	var seen []uint64
	fail := false
	s := New(model.Default(), WithPrecommit(func(next Snapshot) error {
		seen = append(seen, next.Version)
		if fail {
			return boom
		}
		return nil
	}))
	notified := 0
	s.Subscribe(func(Snapshot) { notified++ })

	_, changed, err := s.Edit(func(d *model.ResumeData) (bool, error) {
		d.Summary.Content = "saved"
		return true, nil
	})
	require.NoError(t, err)
	assert.True(t, changed)

	fail = true
	snap, changed, err := s.Edit(func(d *model.ResumeData) (bool, error) {
		d.Summary.Content = "lost"
		return true, nil
	})
	assert.ErrorIs(t, err, boom)
	assert.False(t, changed)
	assert.Equal(t, uint64(1), snap.Version)
	assert.Equal(t, "saved", s.Snapshot().Data.Summary.Content)
	assert.Equal(t, []uint64{1, 2}, seen)
	assert.Equal(t, 1, notified)

	_, changed, err = s.Edit(func(d *model.ResumeData) (bool, error) { return false, nil })
	require.NoError(t, err)
	assert.False(t, changed)
	assert.Len(t, seen, 2, "unchanged drafts never reach precommit")
}
