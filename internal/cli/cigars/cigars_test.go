package cigars

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/julianstephens/humidor/internal/cli/clitest"
	"github.com/julianstephens/humidor/internal/lockfile"
	"github.com/julianstephens/humidor/internal/models"
	"github.com/julianstephens/humidor/internal/storage"
	"github.com/julianstephens/humidor/internal/validation"
)

func ptr(s string) *string { return &s }

func TestAddCmd(t *testing.T) {
	ctx, out := clitest.New(t)

	cmd := &AddCmd{Brand: " Padron ", Name: "1964 Anniversary", Origin: "Nicaragua", Rating: "4.5"}
	require.NoError(t, cmd.Run(ctx))

	cigars := ctx.Store.ListCigars(ctx.Ctx)
	require.Len(t, cigars, 1)
	assert.Equal(t, "Padron", cigars[0].Brand)
	assert.Equal(t, "Nicaragua", cigars[0].Origin)
	require.NotNil(t, cigars[0].Rating)
	assert.Equal(t, 4.5, *cigars[0].Rating)
	assert.Contains(t, out.String(), "Added cigar: Padron 1964 Anniversary")
}

func TestAddCmd_Invalid(t *testing.T) {
	tests := []struct {
		name string
		cmd  AddCmd
	}{
		{"rating too high", AddCmd{Brand: "Padron", Name: "1964", Rating: "6"}},
		{"rating not a number", AddCmd{Brand: "Padron", Name: "1964", Rating: "great"}},
		{"blank name", AddCmd{Brand: "Padron", Name: "   "}},
		{"unsupported image scheme", AddCmd{Brand: "Padron", Name: "1964", Image: "ftp://example.com/a.jpg"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx, _ := clitest.New(t)
			err := tt.cmd.Run(ctx)
			require.Error(t, err)
			assert.True(t, errors.Is(err, validation.ErrInvalid), "got %v", err)
			assert.Empty(t, ctx.Store.ListCigars(ctx.Ctx))
		})
	}
}

func TestAddCmd_PromptsForMissingFields(t *testing.T) {
	orig := promptCigar
	defer func() { promptCigar = orig }()

	var prompted bool
	promptCigar = func(title string, f *cigarFields) error {
		prompted = true
		assert.Equal(t, "Add cigar", title)
		assert.Equal(t, "Padron", f.Brand)
		f.Name = "1926 Serie"
		return nil
	}

	ctx, _ := clitest.New(t)
	require.NoError(t, (&AddCmd{Brand: "Padron"}).Run(ctx))
	assert.True(t, prompted)

	cigars := ctx.Store.ListCigars(ctx.Ctx)
	require.Len(t, cigars, 1)
	assert.Equal(t, "1926 Serie", cigars[0].Name)
}

func TestAddCmd_PromptCancelled(t *testing.T) {
	orig := promptCigar
	defer func() { promptCigar = orig }()
	cancelled := errors.New("user aborted")
	promptCigar = func(string, *cigarFields) error { return cancelled }

	ctx, _ := clitest.New(t)
	err := (&AddCmd{}).Run(ctx)
	assert.ErrorIs(t, err, cancelled)
	assert.Empty(t, ctx.Store.ListCigars(ctx.Ctx))
}

func TestListCmd(t *testing.T) {
	ctx, out := clitest.New(t)
	require.NoError(t, (&ListCmd{}).Run(ctx))
	assert.Contains(t, out.String(), "Your humidor is empty")

	_, err := ctx.Store.AddCigar(ctx.Ctx, models.CigarInput{Brand: "Padron", Name: "1964", Rating: models.Rating(4.5)})
	require.NoError(t, err)
	_, err = ctx.Store.AddCigar(ctx.Ctx, models.CigarInput{Brand: "Oliva", Name: "Serie V"})
	require.NoError(t, err)

	out.Reset()
	require.NoError(t, (&ListCmd{}).Run(ctx))
	text := out.String()
	assert.Contains(t, text, "Padron 1964")
	assert.Contains(t, text, "4.5/5")
	assert.Contains(t, text, "Oliva Serie V")
	assert.Contains(t, text, "2 cigar(s)")
	assert.Less(t, strings.Index(text, "Padron"), strings.Index(text, "Oliva"))
}

func TestListCmd_JSON(t *testing.T) {
	ctx, out := clitest.New(t)
	added, err := ctx.Store.AddCigar(ctx.Ctx, models.CigarInput{Brand: "Padron", Name: "1964"})
	require.NoError(t, err)

	require.NoError(t, (&ListCmd{JSON: true}).Run(ctx))

	var got []models.Cigar
	require.NoError(t, json.Unmarshal(out.Bytes(), &got))
	require.Len(t, got, 1)
	assert.Equal(t, added, got[0])
}

func TestShowCmd(t *testing.T) {
	ctx, out := clitest.New(t)
	added, err := ctx.Store.AddCigar(ctx.Ctx, models.CigarInput{Brand: "Padron", Name: "1964", Size: "6 x 52"})
	require.NoError(t, err)

	require.NoError(t, (&ShowCmd{ID: added.ID}).Run(ctx))
	assert.Contains(t, out.String(), "Padron 1964")
	assert.Contains(t, out.String(), "6 x 52")
	assert.Contains(t, out.String(), "Origin: -")

	err = (&ShowCmd{ID: "missing"}).Run(ctx)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestEditCmd(t *testing.T) {
	ctx, out := clitest.New(t)
	added, err := ctx.Store.AddCigar(ctx.Ctx, models.CigarInput{Brand: "Padron", Name: "1964", Origin: "Nicaragua", Rating: models.Rating(4)})
	require.NoError(t, err)

	require.NoError(t, (&EditCmd{ID: added.ID, Name: ptr("1926"), Rating: ptr("")}).Run(ctx))

	got, err := ctx.Store.GetCigar(ctx.Ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "1926", got.Name)
	assert.Equal(t, "Nicaragua", got.Origin, "unset flags keep their value")
	assert.Nil(t, got.Rating, "empty rating clears it")
	assert.Equal(t, added.AddedDate, got.AddedDate)
	assert.Contains(t, out.String(), "Updated cigar: Padron 1926")
}

func TestEditCmd_LockedAcrossPrompt(t *testing.T) {
	ctx, _ := clitest.New(t)
	added, err := ctx.Store.AddCigar(ctx.Ctx, models.CigarInput{Brand: "Padron", Name: "1964"})
	require.NoError(t, err)

	orig := promptCigar
	defer func() { promptCigar = orig }()

	prompted := false
	promptCigar = func(_ string, f *cigarFields) error {
		prompted = true
		_, err := lockfile.Acquire(ctx.LockPath())
		assert.ErrorIs(t, err, lockfile.ErrLocked, "lock must be held while the form is open")
		f.Origin = "Nicaragua"
		return nil
	}
	require.NoError(t, (&EditCmd{ID: added.ID, Interactive: true}).Run(ctx))
	assert.True(t, prompted)

	// Another holder blocks the edit before the record is read or the form opens
	release, err := ctx.AcquireWriteLock()
	require.NoError(t, err)
	defer release()

	prompted = false
	err = (&EditCmd{ID: added.ID, Interactive: true}).Run(ctx)
	assert.ErrorIs(t, err, lockfile.ErrLocked)
	assert.False(t, prompted)

	got, err := ctx.Store.GetCigar(ctx.Ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Nicaragua", got.Origin)
}

func TestEditCmd_Errors(t *testing.T) {
	ctx, _ := clitest.New(t)
	added, err := ctx.Store.AddCigar(ctx.Ctx, models.CigarInput{Brand: "Padron", Name: "1964"})
	require.NoError(t, err)

	assert.ErrorIs(t, (&EditCmd{ID: "missing", Name: ptr("x")}).Run(ctx), storage.ErrNotFound)
	assert.ErrorIs(t, (&EditCmd{ID: added.ID, Brand: ptr(" ")}).Run(ctx), validation.ErrInvalid)

	got, err := ctx.Store.GetCigar(ctx.Ctx, added.ID)
	require.NoError(t, err)
	assert.Equal(t, "Padron", got.Brand)
}

func TestRemoveCmd(t *testing.T) {
	ctx, out := clitest.New(t)
	first, err := ctx.Store.AddCigar(ctx.Ctx, models.CigarInput{Brand: "Padron", Name: "1964"})
	require.NoError(t, err)
	_, err = ctx.Store.AddCigar(ctx.Ctx, models.CigarInput{Brand: "Oliva", Name: "Serie V"})
	require.NoError(t, err)

	require.NoError(t, (&RemoveCmd{ID: first.ID}).Run(ctx))
	assert.Contains(t, out.String(), "Removed cigar: Padron 1964 (1 left)")

	cigars := ctx.Store.ListCigars(ctx.Ctx)
	require.Len(t, cigars, 1)
	assert.Equal(t, "Oliva", cigars[0].Brand)
}

func TestRemoveCmd_Declined(t *testing.T) {
	ctx, out := clitest.New(t)
	ctx.Yes = false
	ctx.In = strings.NewReader("n\n")
	added, err := ctx.Store.AddCigar(ctx.Ctx, models.CigarInput{Brand: "Padron", Name: "1964"})
	require.NoError(t, err)

	require.NoError(t, (&RemoveCmd{ID: added.ID}).Run(ctx))
	assert.Contains(t, out.String(), "Cancelled")
	assert.Len(t, ctx.Store.ListCigars(ctx.Ctx), 1)
}
