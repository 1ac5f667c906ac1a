package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/safeeat/backend/internal/domain"
	"github.com/safeeat/backend/internal/infrastructure/kvstore"
)

type fakeProducts map[string]*domain.Product

func (f fakeProducts) FetchProduct(ctx context.Context, barcode string) (*domain.Product, error) {
	p, ok := f[barcode]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

var catalog = fakeProducts{
	"7300400481588": {
		ProductName:     domain.Some("Knäckebröd"),
		Brands:          domain.Some("Wasa"),
		IngredientsText: domain.Some("Vete, socker, GLUTEN, salt"),
	},
	"8712100849084": {
		ProductName: domain.Some("Nötkaka"),
		Allergens:   domain.Some("Kan innehålla nötter"),
	},
	"3017620422003": {
		ProductName:     domain.Some("Vatten"),
		IngredientsText: domain.Some("vatten, salt"),
	},
}

func run(t *testing.T, app *App, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	err := New(strings.NewReader(stdin), &out).WithApp(app).Execute(context.Background(), args)
	return out.String(), err
}

func newTestApp() *App {
	return NewAppFrom(kvstore.NewMemoryStore(), catalog)
}

func TestAvoidCommands(t *testing.T) {
	app := newTestApp()

	out, err := run(t, app, "", "avoid", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "No avoided ingredients")

	out, err = run(t, app, "", "avoid", "add", " Gluten ", "SOJA", "gluten")
	require.NoError(t, err)
	assert.Equal(t, "- gluten\n- soja\n", out)

	out, err = run(t, app, "", "avoid", "remove", " Soja")
	require.NoError(t, err)
	assert.Equal(t, "- gluten\n", out)

	out, err = run(t, app, "", "avoid", "clear")
	require.NoError(t, err)
	assert.Contains(t, out, "No avoided ingredients")
	assert.Empty(t, app.Preferences.GetAvoidList(context.Background()))
}

func TestAvoidSuggest(t *testing.T) {
	out, err := run(t, newTestApp(), "", "avoid", "suggest")

	require.NoError(t, err)
	assert.Contains(t, out, "- konserveringsmedel\n")
}

func TestScanCommand(t *testing.T) {
	t.Run("unsafe product", func(t *testing.T) {
		app := newTestApp()
		require.NoError(t, app.Preferences.AddIngredient(context.Background(), "gluten"))

		out, err := run(t, app, "", "scan", "7300400481588")

		require.NoError(t, err)
		assert.Contains(t, out, "Knäckebröd (7300400481588)")
		assert.Contains(t, out, "brand: Wasa")
		assert.Contains(t, out, "verdict: AVOID - contains gluten")
	})

	t.Run("safe product", func(t *testing.T) {
		app := newTestApp()
		require.NoError(t, app.Preferences.SaveAvoidList(context.Background(), []string{"soja", "mjölk"}))

		out, err := run(t, app, "", "scan", "3017620422003")

		require.NoError(t, err)
		assert.Contains(t, out, "verdict: SAFE")
	})

	t.Run("camera flag uses the app camera", func(t *testing.T) {
		app := newTestApp()
		require.NoError(t, app.Preferences.AddIngredient(context.Background(), "nötter"))
		app.Camera = fixedCamera("8712100849084")

		out, err := run(t, app, "", "scan", "--camera")

		require.NoError(t, err)
		assert.Contains(t, out, "verdict: AVOID - contains nötter")
	})

	t.Run("unknown product", func(t *testing.T) {
		_, err := run(t, newTestApp(), "", "scan", "1111111111111")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "could not find the product")
	})

	t.Run("invalid barcode", func(t *testing.T) {
		_, err := run(t, newTestApp(), "", "scan", "12ab")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "enter the barcode manually")
	})

	t.Run("missing input", func(t *testing.T) {
		_, err := run(t, newTestApp(), "", "scan")

		assert.Error(t, err)
	})

	t.Run("missing image file", func(t *testing.T) {
		_, err := run(t, newTestApp(), "", "scan", "--image", "/nonexistent/photo.png")

		assert.Error(t, err)
	})
}

type fixedCamera string

func (f fixedCamera) Capture(ctx context.Context) (string, error) {
	return string(f), nil
}

func TestInteractive(t *testing.T) {
	app := newTestApp()

	script := strings.Join([]string{
		"scan",
		"settings",
		"add gluten",
		"add nötter",
		"add Soja",
		"remove SOJA",
		"back",
		"scan",
		"7300400481588",
		"again",
		"3017620422003",
		"home",
		"quit",
	}, "\n")

	out, err := run(t, app, script, "interactive")

	require.NoError(t, err)
	assert.Contains(t, out, "choose ingredients to avoid first")
	assert.Contains(t, out, "You avoid (2): gluten, nötter")
	assert.Contains(t, out, "verdict: AVOID - contains gluten")
	assert.Contains(t, out, "verdict: SAFE")
	assert.Contains(t, out, "Safe: 1  Avoid: 1")
	assert.Equal(t, []string{"gluten", "nötter"}, app.Preferences.GetAvoidList(context.Background()))
}

func TestInteractive_EndOfInput(t *testing.T) {
	out, err := run(t, newTestApp(), "settings\n", "interactive")

	require.NoError(t, err)
	assert.Contains(t, out, "[settings]> ")
}

func TestInteractive_UnknownCommand(t *testing.T) {
	out, err := run(t, newTestApp(), "dance\nquit\n", "interactive")

	require.NoError(t, err)
	assert.Contains(t, out, `unknown command "dance"`)
}
