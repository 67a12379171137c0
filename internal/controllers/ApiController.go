package controllers

import (
	"errors"
	"fmt"
	"luckypick/internal/models"
	"luckypick/internal/providers"
	"luckypick/internal/services"
	"net/http"

	json "github.com/goccy/go-json"
	"github.com/gookit/validate"
	"github.com/spf13/cast"
)

const maxRequestBodySize = 1 << 20 // 1 MB

var errMalformedBody = errors.New("malformed body")

type ApiController struct {
	logger    providers.Logger
	service   services.LotteryServiceInterface
	cache     providers.CacheProviderInterface
	formatter providers.FormatterInterface
}

func NewApiController(logger providers.Logger, service services.LotteryServiceInterface, cache providers.CacheProviderInterface, formatter providers.FormatterInterface) *ApiController {
	return &ApiController{
		logger:    logger,
		service:   service,
		cache:     cache,
		formatter: formatter,
	}
}

// Range checks live in the service so they map onto domain errors.
type generateRequest struct {
	Count int    `json:"count" validate:"int"`
	Type  string `json:"type" validate:"required"`
}

type saveRequest struct {
	Batch string `json:"batch" validate:"required"`
	Index int    `json:"index" validate:"int"`
}

type themeRequest struct {
	Theme string `json:"theme" validate:"required"`
}

type fixedResponse struct {
	Numbers []int `json:"numbers"`
	Max     int   `json:"max"`
}

type premiumResponse struct {
	models.PremiumAnalysis
	FortuneText string `json:"fortuneText"`
	BallRanges  []int  `json:"ballRanges,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// errorSignal maps a domain error onto its HTTP status and wire signal.
func errorSignal(err error) (int, string) {
	switch {
	case errors.Is(err, models.ErrDuplicate):
		return http.StatusConflict, "duplicate"
	case errors.Is(err, models.ErrIndexOutOfRange):
		return http.StatusNotFound, "index_out_of_range"
	case errors.Is(err, models.ErrStaleBatch):
		return http.StatusGone, "stale_batch"
	case errors.Is(err, models.ErrInvalidCount):
		return http.StatusBadRequest, "invalid_count"
	case errors.Is(err, models.ErrInvalidSelection):
		return http.StatusBadRequest, "invalid_selection"
	case errors.Is(err, models.ErrNotLotto):
		return http.StatusUnprocessableEntity, "not_lotto"
	case errors.Is(err, models.ErrInvalidTheme):
		return http.StatusBadRequest, "invalid_theme"
	}
	return http.StatusInternalServerError, "internal"
}

func writeJSON(w http.ResponseWriter, status int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func (ac *ApiController) respond(w http.ResponseWriter, r *http.Request, status int, v any) {
	gson, err := json.Marshal(v)
	if err != nil {
		ac.logger.Errorf(providers.GetLogTypeByRequestType(r.Method), "Encode %s: %s", r.URL.Path, err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, status, gson)
}

// rejectBody answers a body that failed to decode or validate. signal covers the
// validation case.
func (ac *ApiController) rejectBody(w http.ResponseWriter, r *http.Request, err error, signal string) {
	ac.logger.Debugf(providers.GetLogTypeByRequestType(r.Method), "Bad request body on %s: %s", r.URL.Path, err)
	if errors.Is(err, errMalformedBody) {
		signal = "bad_request"
	}
	ac.respond(w, r, http.StatusBadRequest, errorResponse{Error: signal})
}

func (ac *ApiController) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, signal := errorSignal(err)
	logType := providers.GetLogTypeByRequestType(r.Method)
	if status == http.StatusInternalServerError {
		ac.logger.Errorf(logType, "%s %s: %s", r.Method, r.URL.Path, err)
	} else {
		ac.logger.Debugf(logType, "%s %s: %s", r.Method, r.URL.Path, err)
	}
	ac.respond(w, r, status, errorResponse{Error: signal})
}

// serveFromCacheOrCompute keys entries by state revision, so any mutation retires them.
func (ac *ApiController) serveFromCacheOrCompute(w http.ResponseWriter, r *http.Request, name string, compute func() (any, error)) {
	cacheKey := fmt.Sprintf("%s:%d", name, ac.service.Revision())
	if data, ok := ac.cache.Get(cacheKey); ok {
		writeJSON(w, http.StatusOK, data)
		return
	}

	result, err := compute()
	if err != nil {
		ac.fail(w, r, err)
		return
	}

	gson, err := json.Marshal(result)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	ac.cache.Set(cacheKey, gson)
	writeJSON(w, http.StatusOK, gson)
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodySize)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return fmt.Errorf("%w: %v", errMalformedBody, err)
	}
	v := validate.Struct(dst)
	if !v.Validate() {
		return errors.New(v.Errors.String())
	}
	return nil
}

// queryInt reads an integer query parameter, def when absent.
func queryInt(r *http.Request, name string, def int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def, nil
	}
	return cast.ToIntE(raw)
}

func (ac *ApiController) Generate(w http.ResponseWriter, r *http.Request) {
	var payload generateRequest
	if err := decodeBody(w, r, &payload); err != nil {
		ac.rejectBody(w, r, err, "invalid_selection")
		return
	}

	batch, err := ac.service.Generate(payload.Count, models.Kind(payload.Type))
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.respond(w, r, http.StatusOK, batch)
}

func (ac *ApiController) GetBatch(w http.ResponseWriter, r *http.Request) {
	batch := ac.service.LastBatch()
	if batch == nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	ac.respond(w, r, http.StatusOK, batch)
}

func (ac *ApiController) fixedBody(fs models.FixedSelection) fixedResponse {
	return fixedResponse{Numbers: fs.Numbers(), Max: models.MaxFixedNumbers}
}

func (ac *ApiController) GetFixed(w http.ResponseWriter, r *http.Request) {
	ac.respond(w, r, http.StatusOK, ac.fixedBody(ac.service.Fixed()))
}

func (ac *ApiController) ToggleFixed(w http.ResponseWriter, r *http.Request) {
	n, err := queryInt(r, "n", 0)
	if err != nil {
		ac.fail(w, r, fmt.Errorf("number %q: %w", r.URL.Query().Get("n"), models.ErrInvalidSelection))
		return
	}
	fs, err := ac.service.ToggleFixed(n)
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.respond(w, r, http.StatusOK, ac.fixedBody(fs))
}

func (ac *ApiController) ClearFixed(w http.ResponseWriter, r *http.Request) {
	ac.service.ClearFixed()
	ac.respond(w, r, http.StatusOK, ac.fixedBody(models.FixedSelection{}))
}

func (ac *ApiController) GetSaved(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "saved", func() (any, error) {
		return ac.service.Saved(), nil
	})
}

func (ac *ApiController) SaveResult(w http.ResponseWriter, r *http.Request) {
	var payload saveRequest
	if err := decodeBody(w, r, &payload); err != nil {
		ac.rejectBody(w, r, err, "stale_batch")
		return
	}

	result, err := ac.service.Save(payload.Batch, payload.Index)
	if err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.respond(w, r, http.StatusCreated, result)
}

func (ac *ApiController) DeleteSaved(w http.ResponseWriter, r *http.Request) {
	i, err := queryInt(r, "i", -1)
	if err != nil {
		i = -1
	}
	if err := ac.service.Delete(i); err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.respond(w, r, http.StatusOK, ac.service.Saved())
}

func (ac *ApiController) ClearSaved(w http.ResponseWriter, r *http.Request) {
	ac.service.Clear()
	ac.respond(w, r, http.StatusOK, models.History{})
}

func (ac *ApiController) GetStats(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "stats", func() (any, error) {
		return ac.service.Stats(), nil
	})
}

func (ac *ApiController) GetFrequency(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "frequency", func() (any, error) {
		return ac.service.FrequencyReport(), nil
	})
}

func (ac *ApiController) GetAnalysis(w http.ResponseWriter, r *http.Request) {
	i, err := queryInt(r, "i", 0)
	if err != nil {
		i = -1
	}
	ac.serveFromCacheOrCompute(w, r, fmt.Sprintf("analysis:%d", i), func() (any, error) {
		return ac.service.Analyze(i)
	})
}

// GetPremium is never cached: the fortune is drawn per request.
func (ac *ApiController) GetPremium(w http.ResponseWriter, r *http.Request) {
	i, err := queryInt(r, "i", 0)
	if err != nil {
		i = -1
	}
	p, err := ac.service.Premium(i)
	if err != nil {
		ac.fail(w, r, err)
		return
	}

	resp := premiumResponse{PremiumAnalysis: p}
	if p.Kind == models.KindLotto {
		resp.FortuneText = ac.formatter.LottoFortune(p.Fortune)
		for _, n := range p.Lotto.Numbers {
			resp.BallRanges = append(resp.BallRanges, models.BallRange(n))
		}
	} else {
		resp.FortuneText = ac.formatter.PensionFortune()
	}
	ac.respond(w, r, http.StatusOK, resp)
}

func (ac *ApiController) GetSimulation(w http.ResponseWriter, r *http.Request) {
	ac.serveFromCacheOrCompute(w, r, "simulation", func() (any, error) {
		return ac.service.Simulation()
	})
}

func (ac *ApiController) GetTheme(w http.ResponseWriter, r *http.Request) {
	ac.respond(w, r, http.StatusOK, themeRequest{Theme: string(ac.service.Theme())})
}

func (ac *ApiController) SetTheme(w http.ResponseWriter, r *http.Request) {
	var payload themeRequest
	if err := decodeBody(w, r, &payload); err != nil {
		ac.rejectBody(w, r, err, "invalid_theme")
		return
	}
	if err := ac.service.SetTheme(models.Theme(payload.Theme)); err != nil {
		ac.fail(w, r, err)
		return
	}
	ac.respond(w, r, http.StatusOK, payload)
}
