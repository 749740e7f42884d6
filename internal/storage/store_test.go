package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/sync/errgroup"

	"github.com/julianstephens/humidor/internal/constants"
	"github.com/julianstephens/humidor/internal/models"
	"github.com/julianstephens/humidor/internal/storage/memory"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// faultyMedium wraps the memory medium and fails the configured calls.
type faultyMedium struct {
	*memory.Store
	getErr    error
	setErr    error
	removeErr error
	sets      int
}

func (f *faultyMedium) Get(ctx context.Context, key string) (string, bool, error) {
	if f.getErr != nil {
		return "", false, f.getErr
	}
	return f.Store.Get(ctx, key)
}

func (f *faultyMedium) Set(ctx context.Context, key, value string) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	return f.Store.Set(ctx, key, value)
}

func (f *faultyMedium) MultiRemove(ctx context.Context, keys ...string) error {
	if f.removeErr != nil {
		return f.removeErr
	}
	return f.Store.MultiRemove(ctx, keys...)
}

func newTestStore(t *testing.T, opts ...Option) (*Store, *faultyMedium) {
	t.Helper()
	m := &faultyMedium{Store: memory.New()}
	return New(m, opts...), m
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

func fixedClock(ts time.Time) func() time.Time {
	return func() time.Time { return ts }
}

func TestAddCigar_InsertionOrderAndDistinctIDs(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	names := []string{"1964", "Behike 52", "Opus X", "No. 2"}
	for _, name := range names {
		_, err := s.AddCigar(ctx, models.CigarInput{Brand: "Brand", Name: name})
		require.NoError(t, err)
	}

	cigars := s.ListCigars(ctx)
	require.Len(t, cigars, len(names))

	seen := map[string]bool{}
	for i, c := range cigars {
		assert.Equal(t, names[i], c.Name)
		assert.NotEmpty(t, c.ID)
		assert.False(t, seen[c.ID], "duplicate id %s", c.ID)
		seen[c.ID] = true
	}
}

func TestAddCigar_PadronScenario(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	cigar, err := s.AddCigar(ctx, models.CigarInput{Brand: "Padron", Name: "1964", Rating: models.Rating(4.5)})
	require.NoError(t, err)

	assert.NotEmpty(t, cigar.ID)
	_, err = time.Parse(time.RFC3339, cigar.AddedDate)
	assert.NoError(t, err, "addedDate %q is not ISO-8601", cigar.AddedDate)
	assert.Equal(t, "Padron", cigar.Brand)
	assert.Equal(t, "1964", cigar.Name)
	require.NotNil(t, cigar.Rating)
	assert.Equal(t, 4.5, *cigar.Rating)

	remaining, err := s.RemoveCigar(ctx, cigar.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	assert.Empty(t, s.ListCigars(ctx))
}

func TestAddCigar_RoundTrip(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 3, 1, 12, 30, 45, 123_000_000, time.UTC)
	s, _ := newTestStore(t, WithClock(fixedClock(ts)), WithIDGenerator(sequentialIDs()))

	in := models.CigarInput{
		Brand:    "Arturo Fuente",
		Name:     "Opus X",
		Size:     "Robusto",
		Origin:   "Dominican Republic",
		Rating:   models.Rating(4.9),
		ImageURI: "file:///tmp/opus.jpg",
	}
	_, err := s.AddCigar(ctx, in)
	require.NoError(t, err)

	want := []models.Cigar{{
		ID:        "id-1",
		Brand:     in.Brand,
		Name:      in.Name,
		Size:      in.Size,
		Origin:    in.Origin,
		Rating:    models.Rating(4.9),
		ImageURI:  in.ImageURI,
		AddedDate: "2025-03-01T12:30:45.123Z",
	}}
	if diff := cmp.Diff(want, s.ListCigars(ctx)); diff != "" {
		t.Errorf("ListCigars() mismatch (-want +got):\n%s", diff)
	}
}

func TestAddCigar_PersistedShape(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)
	s, m := newTestStore(t, WithClock(fixedClock(ts)), WithIDGenerator(sequentialIDs()))

	_, err := s.AddCigar(ctx, models.CigarInput{Brand: "Padron", Name: "1964", ImageURI: "file:///a.jpg"})
	require.NoError(t, err)

	raw, found, err := m.Get(ctx, constants.KeyCigars)
	require.NoError(t, err)
	require.True(t, found)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal([]byte(raw), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, map[string]any{
		"id":        "id-1",
		"brand":     "Padron",
		"name":      "1964",
		"imageUri":  "file:///a.jpg",
		"addedDate": "2025-03-01T00:00:00.000Z",
	}, decoded[0])
}

func TestRemoveCigar_KeepsOthersInOrder(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t, WithIDGenerator(sequentialIDs()))

	for _, name := range []string{"a", "b", "c", "d"} {
		_, err := s.AddCigar(ctx, models.CigarInput{Brand: "x", Name: name})
		require.NoError(t, err)
	}
	before := s.ListCigars(ctx)

	remaining, err := s.RemoveCigar(ctx, "id-2")
	require.NoError(t, err)

	want := []models.Cigar{before[0], before[2], before[3]}
	if diff := cmp.Diff(want, remaining); diff != "" {
		t.Errorf("RemoveCigar() result mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff(want, s.ListCigars(ctx)); diff != "" {
		t.Errorf("ListCigars() after remove mismatch (-want +got):\n%s", diff)
	}
}

func TestRemoveCigar_UnknownIDIsNoop(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	added, err := s.AddCigar(ctx, models.CigarInput{Brand: "Padron", Name: "1964"})
	require.NoError(t, err)

	remaining, err := s.RemoveCigar(ctx, "missing")
	require.NoError(t, err)
	assert.Equal(t, []models.Cigar{added}, remaining)
}

func TestRemoveCigar_LegacyTimestampIDs(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	legacy := `[{"id":"1718000000000","brand":"Cohiba","name":"Siglo VI","addedDate":"2024-06-10T06:13:20.000Z"},` +
		`{"id":"1718000000001","brand":"Padron","name":"1926","rating":5,"addedDate":"2024-06-10T06:13:20.001Z"}]`
	require.NoError(t, m.Store.Set(ctx, constants.KeyCigars, legacy))

	cigars := s.ListCigars(ctx)
	require.Len(t, cigars, 2)
	assert.Equal(t, "1718000000000", cigars[0].ID)

	remaining, err := s.RemoveCigar(ctx, "1718000000000")
	require.NoError(t, err)
	require.Len(t, remaining, 1)
	assert.Equal(t, "Padron", remaining[0].Brand)
	assert.Equal(t, 5.0, *remaining[0].Rating)
}

func TestUpdateCigar(t *testing.T) {
	ctx := context.Background()
	clock := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	s, _ := newTestStore(t, WithClock(func() time.Time { return clock }))

	original, err := s.AddCigar(ctx, models.CigarInput{Brand: "Padron", Name: "1964", Rating: models.Rating(4)})
	require.NoError(t, err)

	clock = clock.Add(48 * time.Hour)
	updated, err := s.UpdateCigar(ctx, original.ID, models.CigarInput{Brand: "Padron", Name: "1964 Anniversary", Origin: "Nicaragua"})
	require.NoError(t, err)

	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, original.AddedDate, updated.AddedDate)
	assert.Equal(t, "1964 Anniversary", updated.Name)
	assert.Equal(t, "Nicaragua", updated.Origin)
	assert.Nil(t, updated.Rating)

	got, err := s.GetCigar(ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, updated, got)
}

func TestUpdateCigar_NotFoundWritesNothing(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	_, err := s.UpdateCigar(ctx, "missing", models.CigarInput{Brand: "x", Name: "y"})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrStorageWrite)
	assert.Equal(t, 0, m.sets)
}

func TestGetCigar_NotFound(t *testing.T) {
	s, _ := newTestStore(t)
	_, err := s.GetCigar(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestJournal_AddUpdateRemove(t *testing.T) {
	ctx := context.Background()
	ts := time.Date(2025, 5, 4, 20, 15, 0, 0, time.UTC)
	s, _ := newTestStore(t, WithClock(fixedClock(ts)), WithIDGenerator(sequentialIDs()))

	first, err := s.AddJournalEntry(ctx, models.JournalInput{CigarName: "Padron 1964", Rating: models.Rating(4.5), Notes: "cocoa", Pairing: "espresso"})
	require.NoError(t, err)
	assert.Equal(t, "id-1", first.ID)
	assert.Equal(t, "2025-05-04T20:15:00.000Z", first.Date)

	for _, name := range []string{"Opus X", "Behike 52"} {
		_, err := s.AddJournalEntry(ctx, models.JournalInput{CigarName: name})
		require.NoError(t, err)
	}

	updated, err := s.UpdateJournalEntry(ctx, "id-2", models.JournalInput{CigarName: "Opus X", Flavors: "cedar, pepper"})
	require.NoError(t, err)
	assert.Equal(t, "id-2", updated.ID)
	assert.Equal(t, first.Date, updated.Date)

	remaining, err := s.RemoveJournalEntry(ctx, "id-1")
	require.NoError(t, err)
	require.Len(t, remaining, 2)
	assert.Equal(t, "Opus X", remaining[0].CigarName)
	assert.Equal(t, "cedar, pepper", remaining[0].Flavors)
	assert.Equal(t, "Behike 52", remaining[1].CigarName)

	_, err = s.GetJournalEntry(ctx, "id-1")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.UpdateJournalEntry(ctx, "id-1", models.JournalInput{CigarName: "x"})
	assert.ErrorIs(t, err, ErrNotFound)
}

// Overlapping adds on one Store are serialized, so every entry survives.
func TestAddJournalEntry_OverlappingCallsAllSurvive(t *testing.T) {
	s, _ := newTestStore(t)

	const writers = 32
	var g errgroup.Group
	for i := 0; i < writers; i++ {
		g.Go(func() error {
			_, err := s.AddJournalEntry(context.Background(), models.JournalInput{CigarName: fmt.Sprintf("cigar-%d", i)})
			return err
		})
	}
	require.NoError(t, g.Wait())

	entries := s.ListJournalEntries(context.Background())
	require.Len(t, entries, writers)

	names := map[string]bool{}
	for _, e := range entries {
		names[e.CigarName] = true
	}
	assert.Len(t, names, writers)
}

func TestAddJournalEntry_TwoRapidAddsBothSurvive(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	type result struct {
		entry models.JournalEntry
		err   error
	}
	results := make(chan result, 2)
	for _, name := range []string{"first", "second"} {
		go func() {
			e, err := s.AddJournalEntry(ctx, models.JournalInput{CigarName: name})
			results <- result{e, err}
		}()
	}
	for i := 0; i < 2; i++ {
		r := <-results
		require.NoError(t, r.err)
	}

	assert.Len(t, s.ListJournalEntries(ctx), 2)
}

func TestWriteFailure(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	kept, err := s.AddCigar(ctx, models.CigarInput{Brand: "Padron", Name: "1964"})
	require.NoError(t, err)

	diskFull := errors.New("disk full")
	m.setErr = diskFull

	tests := []struct {
		name string
		call func() error
	}{
		{"add cigar", func() error { _, err := s.AddCigar(ctx, models.CigarInput{Brand: "a", Name: "b"}); return err }},
		{"remove cigar", func() error { _, err := s.RemoveCigar(ctx, kept.ID); return err }},
		{"update cigar", func() error { _, err := s.UpdateCigar(ctx, kept.ID, models.CigarInput{Brand: "a", Name: "b"}); return err }},
		{"add journal entry", func() error {
			_, err := s.AddJournalEntry(ctx, models.JournalInput{CigarName: "a"})
			return err
		}},
		{"set premium mode", func() error { _, err := s.SetPremiumMode(ctx, true); return err }},
		{"set humidifier claimed", func() error { _, err := s.SetHumidifierClaimed(ctx, true); return err }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrStorageWrite)
			assert.ErrorIs(t, err, diskFull)

			var we *WriteError
			require.ErrorAs(t, err, &we)
			assert.Equal(t, tt.name, we.Op)
		})
	}

	m.setErr = nil
	assert.Equal(t, []models.Cigar{kept}, s.ListCigars(ctx))
	assert.Empty(t, s.ListJournalEntries(ctx))
	assert.False(t, s.GetPremiumMode(ctx))
}

func TestReadFailure_DegradesReadsAndAbortsMutations(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	_, err := s.AddCigar(ctx, models.CigarInput{Brand: "Padron", Name: "1964"})
	require.NoError(t, err)
	_, err = s.SetPremiumMode(ctx, true)
	require.NoError(t, err)

	m.getErr = errors.New("medium offline")
	setsBefore := m.sets

	assert.Empty(t, s.ListCigars(ctx))
	assert.NotNil(t, s.ListCigars(ctx))
	assert.Empty(t, s.ListJournalEntries(ctx))
	assert.False(t, s.GetPremiumMode(ctx))
	assert.False(t, s.GetHumidifierClaimed(ctx))

	_, err = s.AddCigar(ctx, models.CigarInput{Brand: "a", Name: "b"})
	assert.ErrorIs(t, err, ErrStorageWrite)
	assert.Equal(t, setsBefore, m.sets, "mutation must not write after a failed read")

	m.getErr = nil
	assert.Len(t, s.ListCigars(ctx), 1)
}

func TestMalformedPayloads(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	require.NoError(t, m.Store.Set(ctx, constants.KeyCigars, "{not json"))
	require.NoError(t, m.Store.Set(ctx, constants.KeyJournalEntries, "null"))
	require.NoError(t, m.Store.Set(ctx, constants.KeyPremiumMode, `"yes"`))
	require.NoError(t, m.Store.Set(ctx, constants.KeyFreeHumidifierClaimed, "null"))

	assert.Empty(t, s.ListCigars(ctx))
	assert.Empty(t, s.ListJournalEntries(ctx))
	assert.False(t, s.GetPremiumMode(ctx))
	assert.False(t, s.GetHumidifierClaimed(ctx))

	// An unreadable collection is replaced on the next add
	added, err := s.AddCigar(ctx, models.CigarInput{Brand: "Padron", Name: "1964"})
	require.NoError(t, err)
	assert.Equal(t, []models.Cigar{added}, s.ListCigars(ctx))
}

func TestFlags(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	assert.False(t, s.GetPremiumMode(ctx))
	assert.False(t, s.GetHumidifierClaimed(ctx))

	v, err := s.SetPremiumMode(ctx, true)
	require.NoError(t, err)
	assert.True(t, v)
	assert.True(t, s.GetPremiumMode(ctx))
	assert.False(t, s.GetHumidifierClaimed(ctx))

	raw, _, err := m.Get(ctx, constants.KeyPremiumMode)
	require.NoError(t, err)
	assert.Equal(t, "true", raw)

	_, err = s.SetHumidifierClaimed(ctx, true)
	require.NoError(t, err)
	assert.True(t, s.GetHumidifierClaimed(ctx))

	v, err = s.SetPremiumMode(ctx, false)
	require.NoError(t, err)
	assert.False(t, v)
	assert.False(t, s.GetPremiumMode(ctx))
}

func TestClearAll(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)

	_, err := s.AddCigar(ctx, models.CigarInput{Brand: "Padron", Name: "1964"})
	require.NoError(t, err)
	_, err = s.AddJournalEntry(ctx, models.JournalInput{CigarName: "Padron 1964"})
	require.NoError(t, err)
	_, err = s.SetPremiumMode(ctx, true)
	require.NoError(t, err)
	_, err = s.SetHumidifierClaimed(ctx, true)
	require.NoError(t, err)

	require.NoError(t, s.ClearAll(ctx))

	assert.Empty(t, s.ListCigars(ctx))
	assert.Empty(t, s.ListJournalEntries(ctx))
	assert.False(t, s.GetPremiumMode(ctx))
	assert.False(t, s.GetHumidifierClaimed(ctx))
	assert.Equal(t, 0, m.Len())
}

func TestClearAll_Failure(t *testing.T) {
	ctx := context.Background()
	s, m := newTestStore(t)
	_, err := s.SetPremiumMode(ctx, true)
	require.NoError(t, err)

	m.removeErr = errors.New("locked")
	err = s.ClearAll(ctx)
	assert.ErrorIs(t, err, ErrStorageWrite)

	var we *WriteError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "clear all", we.Op)
	assert.True(t, s.GetPremiumMode(ctx))
}
