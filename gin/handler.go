package gin

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/mensa"
	"github.com/gin-gonic/gin"
)

// DateLayout is the format of the date query parameter.
const DateLayout = "2006-01-02"

func (s *Server) handleMenu(c *gin.Context) {
	q, filter, err := parseMenuQuery(c)
	if err != nil {
		s.writeError(c, err)
		return
	}

	menu, err := s.MenuService.FindMenu(c.Request.Context(), q)
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeJSON(c, mensa.FilterMenu(menu, filter))
}

func (s *Server) handleCodes(c *gin.Context) {
	list, err := s.FacilityService.FindFacilities(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeJSON(c, mensa.FilterFacilities(list, mensa.FacilityFilter{
		Pattern:        c.Query("pattern"),
		IncludeAddress: true,
	}))
}

func (s *Server) handleAllergens(c *gin.Context) {
	allergens, err := s.AllergenService.FindAllergens(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}
	s.writeJSON(c, allergens)
}

// parseMenuQuery reads the menu query parameters. Repeated color, tag and
// allergen parameters accumulate; mensa is required.
func parseMenuQuery(c *gin.Context) (mensa.MenuQuery, mensa.MealFilter, error) {
	var q mensa.MenuQuery
	var f mensa.MealFilter

	raw, ok := c.GetQuery("mensa")
	if !ok {
		return q, f, mensa.Errorf(mensa.EINVALID, "mensa parameter required")
	}
	code, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || code <= 0 {
		return q, f, mensa.Errorf(mensa.EINVALID, "invalid mensa %q", raw)
	}
	q.Facility = code

	if raw := c.Query("date"); raw != "" {
		date, err := time.Parse(DateLayout, raw)
		if err != nil {
			return q, f, mensa.Errorf(mensa.EINVALID, "invalid date %q, use YYYY-MM-DD", raw)
		}
		q.Date = date
	}

	for _, raw := range c.QueryArray("color") {
		color, err := mensa.ParseColor(raw)
		if err != nil {
			return q, f, err
		}
		f.Colors = append(f.Colors, color)
	}
	for _, raw := range c.QueryArray("tag") {
		tag, err := mensa.ParseTag(raw)
		if err != nil {
			return q, f, err
		}
		f.Tags = append(f.Tags, tag)
	}
	if raw := c.Query("max_price"); raw != "" {
		price, err := mensa.ParseCents(raw)
		if err != nil {
			return q, f, err
		}
		f.MaxPrice = &price
	}
	f.Allergens = mensa.NewAllergenSet(c.QueryArray("allergen")...)

	return q, f, nil
}

// writeJSON writes v with a weak ETag over the encoded body and answers
// conditional requests with 304.
func (s *Server) writeJSON(c *gin.Context, v any) {
	body, err := json.Marshal(v)
	if err != nil {
		s.writeError(c, err)
		return
	}

	etag := `W/"` + strconv.FormatUint(xxhash.Sum64(body), 16) + `"`
	c.Header("ETag", etag)
	if c.GetHeader("If-None-Match") == etag {
		c.Status(http.StatusNotModified)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", body)
}

// writeError writes err as {"error": message} with a status derived from its
// code.
func (s *Server) writeError(c *gin.Context, err error) {
	code := mensa.ErrorCode(err)
	status := errorStatus(code)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err, "request_id", c.GetString(RequestIDHeader))
	}
	c.AbortWithStatusJSON(status, gin.H{"error": mensa.ErrorMessage(err), "code": code})
}

func errorStatus(code string) int {
	switch code {
	case mensa.EINVALID:
		return http.StatusBadRequest
	case mensa.ENOTFOUND:
		return http.StatusNotFound
	case mensa.EPARSE, mensa.ENETWORK:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
