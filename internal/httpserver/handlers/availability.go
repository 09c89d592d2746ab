package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/freenight/internal/domain"
	"github.com/MrSnakeDoc/freenight/internal/httpserver/deps"
	"github.com/MrSnakeDoc/freenight/internal/logger"
	"github.com/MrSnakeDoc/freenight/internal/lookup"
	"github.com/MrSnakeDoc/freenight/internal/probe"
)

const maxRequestBytes = 64 << 10

// availabilityRequest is the inbound body. Card and voucher details are
// accepted for compatibility with existing clients and dropped on decode.
type availabilityRequest struct {
	HotelCode   string   `json:"hotelCode"`
	GroupCode   string   `json:"groupCode"`
	Dates       []string `json:"dates"`
	StartDate   string   `json:"startDate"`
	EndDate     string   `json:"endDate"`
	CreditCard  string   `json:"creditCard"`
	VoucherCode string   `json:"voucherCode"`
}

type availabilityResponse struct {
	Success bool `json:"success"`
	*lookup.Response
}

// Availability probes a hotel for a list or range of arrival dates.
func Availability(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body availabilityRequest
		if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&body); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON body")
			return
		}
		body.CreditCard, body.VoucherCode = "", ""

		req, err := body.toLookup(d.MaxDates)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		resp, err := d.Lookup.Lookup(r.Context(), req)
		switch {
		case errors.Is(err, probe.ErrNoRenderer):
			d.Logger.Error("availability request rejected", logger.Error(err))
			writeError(w, http.StatusServiceUnavailable, "no rendering provider configured")
			return
		case errors.Is(err, lookup.ErrMissingCode):
			writeError(w, http.StatusBadRequest, err.Error())
			return
		case err != nil:
			d.Logger.Error("availability lookup failed", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "lookup failed")
			return
		}

		writeJSON(w, http.StatusOK, availabilityResponse{Success: true, Response: resp})
	}
}

// toLookup validates the body. An explicit date list wins over a range;
// a range without an end date covers the start date only.
func (b availabilityRequest) toLookup(maxDates int) (lookup.Request, error) {
	req := lookup.Request{
		HotelCode: strings.TrimSpace(b.HotelCode),
		GroupCode: strings.TrimSpace(b.GroupCode),
	}
	if req.HotelCode == "" {
		return req, errors.New("hotelCode is required")
	}
	if req.GroupCode == "" {
		return req, errors.New("groupCode is required")
	}

	if len(b.Dates) > 0 {
		dates, err := probe.ParseDates(b.Dates, maxDates)
		if err != nil {
			return req, err
		}
		req.Dates = dates
		return req, nil
	}

	if b.StartDate == "" {
		return req, errors.New("dates or startDate is required")
	}
	start, err := domain.ParseDate(b.StartDate)
	if err != nil {
		return req, err
	}
	end := start
	if b.EndDate != "" {
		if end, err = domain.ParseDate(b.EndDate); err != nil {
			return req, err
		}
	}

	dates, err := probe.ExpandRange(start, end, maxDates)
	if err != nil {
		return req, err
	}
	req.Dates = dates
	return req, nil
}
