package gin_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/fwojciec/mensa"
	mensagin "github.com/fwojciec/mensa/gin"
	"github.com/fwojciec/mensa/mock"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

var testMenu = mensa.Response[mensa.Meal]{
	{Name: "Essen", Items: []mensa.Meal{
		{
			Name:      "Linseneintopf",
			Color:     mensa.ColorGreen,
			Tags:      []mensa.Tag{mensa.TagVegan},
			Price:     &mensa.Price{Student: 195, Employee: 330, Guest: 410},
			Allergens: []string{},
		},
		{
			Name:      "Schnitzel",
			Color:     mensa.ColorRed,
			Tags:      []mensa.Tag{},
			Price:     &mensa.Price{Student: 450, Employee: 600, Guest: 720},
			Allergens: []string{"22a", "23"},
		},
	}},
}

func newServer(menus mensa.MenuService, facilities mensa.FacilityService, allergens mensa.AllergenService) *mensagin.Server {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return mensagin.NewServer(menus, facilities, allergens, logger)
}

func get(t *testing.T, h http.Handler, target string, header http.Header) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	for k, vv := range header {
		for _, v := range vv {
			req.Header.Add(k, v)
		}
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func menuService(gotQuery *mensa.MenuQuery) *mock.MenuService {
	return &mock.MenuService{
		FindMenuFn: func(ctx context.Context, q mensa.MenuQuery) (mensa.Response[mensa.Meal], error) {
			if gotQuery != nil {
				*gotQuery = q
			}
			return testMenu, nil
		},
	}
}

func TestServer_Menu(t *testing.T) {
	t.Parallel()

	t.Run("returns filtered menu", func(t *testing.T) {
		t.Parallel()

		var got mensa.MenuQuery
		srv := newServer(menuService(&got), nil, nil)

		rec := get(t, srv, "/menu?mensa=191&date=2026-10-16&tag=vegetarian", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, 191, got.Facility)
		assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC), got.Date)
		assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

		var menu mensa.Response[mensa.Meal]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &menu))
		require.Len(t, menu, 1)
		require.Len(t, menu[0].Items, 1)
		assert.Equal(t, "Linseneintopf", menu[0].Items[0].Name)
	})

	t.Run("accumulates repeated parameters", func(t *testing.T) {
		t.Parallel()

		srv := newServer(menuService(nil), nil, nil)

		rec := get(t, srv, "/menu?mensa=191&color=green&color=red&allergen=23&max_price=5", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var menu mensa.Response[mensa.Meal]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &menu))
		require.Len(t, menu, 1)
		require.Len(t, menu[0].Items, 1)
		assert.Equal(t, "Linseneintopf", menu[0].Items[0].Name)
	})

	t.Run("returns empty array when nothing matches", func(t *testing.T) {
		t.Parallel()

		srv := newServer(menuService(nil), nil, nil)

		rec := get(t, srv, "/menu?mensa=191&max_price=1,00", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[]`, rec.Body.String())
	})

	t.Run("serializes the documented fields", func(t *testing.T) {
		t.Parallel()

		srv := newServer(menuService(nil), nil, nil)

		rec := get(t, srv, "/menu?mensa=191&color=green", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"name":"Essen","items":[{
			"name":"Linseneintopf",
			"color":"green",
			"tags":["vegan"],
			"price":{"student":195,"employee":330,"guest":410},
			"allergens":[]
		}]}]`, rec.Body.String())
	})

	t.Run("rejects invalid parameters", func(t *testing.T) {
		t.Parallel()

		srv := newServer(menuService(nil), nil, nil)

		for _, target := range []string{
			"/menu",
			"/menu?mensa=abc",
			"/menu?mensa=0",
			"/menu?mensa=191&color=blue",
			"/menu?mensa=191&tag=halal",
			"/menu?mensa=191&max_price=cheap",
			"/menu?mensa=191&date=16.10.2026",
		} {
			rec := get(t, srv, target, nil)
			assert.Equal(t, http.StatusBadRequest, rec.Code, target)
			assert.Contains(t, rec.Body.String(), `"code":"invalid"`, target)
		}
	})

	t.Run("maps parse failures to bad gateway", func(t *testing.T) {
		t.Parallel()

		menus := &mock.MenuService{
			FindMenuFn: func(ctx context.Context, q mensa.MenuQuery) (mensa.Response[mensa.Meal], error) {
				return nil, mensa.NewParseError("Menu.groups", mensa.NewParseError("Group.name", mensa.Errorf(mensa.ENOTFOUND, "no element matches %q", ".splGroup")))
			},
		}
		srv := newServer(menus, nil, nil)

		rec := get(t, srv, "/menu?mensa=191", nil)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
		assert.Contains(t, rec.Body.String(), "Menu.groups")
		assert.Contains(t, rec.Body.String(), `"code":"parse"`)
	})

	t.Run("maps network failures to bad gateway", func(t *testing.T) {
		t.Parallel()

		menus := &mock.MenuService{
			FindMenuFn: func(ctx context.Context, q mensa.MenuQuery) (mensa.Response[mensa.Meal], error) {
				return nil, mensa.Errorf(mensa.ENETWORK, "HTTP 503")
			},
		}
		srv := newServer(menus, nil, nil)

		rec := get(t, srv, "/menu?mensa=191", nil)

		assert.Equal(t, http.StatusBadGateway, rec.Code)
	})
}

func TestServer_Codes(t *testing.T) {
	t.Parallel()

	facilities := &mock.FacilityService{
		FindFacilitiesFn: func(ctx context.Context) (mensa.Response[mensa.Facility], error) {
			return mensa.Response[mensa.Facility]{
				{Name: "HU", Items: []mensa.Facility{
					{Code: 191, Name: "Mensa HU Süd", Address: "Unter den Linden 6"},
					{Code: 147, Name: "Mensa HU Nord", Address: "Hannoversche Str. 7"},
				}},
				{Name: "TU", Items: []mensa.Facility{
					{Code: 321, Name: "Mensa TU Hardenbergstraße", Address: "Hardenbergstr. 34"},
				}},
			}, nil
		},
	}
	srv := newServer(nil, facilities, nil)

	t.Run("lists all facilities without pattern", func(t *testing.T) {
		t.Parallel()

		rec := get(t, srv, "/codes", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		var list mensa.Response[mensa.Facility]
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
		assert.Equal(t, 3, list.Len())
	})

	t.Run("matches name or address", func(t *testing.T) {
		t.Parallel()

		rec := get(t, srv, "/codes?pattern=linden", nil)

		require.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `[{"name":"HU","items":[{"code":191,"name":"Mensa HU Süd","address":"Unter den Linden 6"}]}]`, rec.Body.String())
	})
}

func TestServer_Allergens(t *testing.T) {
	t.Parallel()

	allergens := &mock.AllergenService{
		FindAllergensFn: func(ctx context.Context) ([]mensa.Allergen, error) {
			return []mensa.Allergen{
				{Number: 9, Name: "Sellerie"},
				{Number: 22, Index: "a", Name: "Weizen"},
			}, nil
		},
	}
	srv := newServer(nil, nil, allergens)

	rec := get(t, srv, "/allergens", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"name":"Sellerie","number":9,"index":null},{"name":"Weizen","number":22,"index":"a"}]`, rec.Body.String())
}

func TestServer_Headers(t *testing.T) {
	t.Parallel()

	srv := newServer(menuService(nil), nil, nil)

	t.Run("allows any origin", func(t *testing.T) {
		t.Parallel()

		rec := get(t, srv, "/menu", nil)

		assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("assigns a request ID", func(t *testing.T) {
		t.Parallel()

		rec := get(t, srv, "/menu?mensa=191", nil)

		assert.Len(t, rec.Header().Get(mensagin.RequestIDHeader), 36)
	})

	t.Run("echoes the caller's request ID", func(t *testing.T) {
		t.Parallel()

		rec := get(t, srv, "/menu?mensa=191", http.Header{mensagin.RequestIDHeader: {"abc-123"}})

		assert.Equal(t, "abc-123", rec.Header().Get(mensagin.RequestIDHeader))
	})

	t.Run("answers matching ETag with not modified", func(t *testing.T) {
		t.Parallel()

		first := get(t, srv, "/menu?mensa=191", nil)
		etag := first.Header().Get("ETag")
		require.NotEmpty(t, etag)
		assert.Regexp(t, `^W/"[0-9a-f]+"$`, etag)

		second := get(t, srv, "/menu?mensa=191", http.Header{"If-None-Match": {etag}})

		assert.Equal(t, http.StatusNotModified, second.Code)
		assert.Empty(t, second.Body.String())
	})
}
