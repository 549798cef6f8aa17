// Package api exposes the app's account-scoped operations over HTTP.
package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"

	"mealmate/internal/auth"
	"mealmate/internal/devicestore"
	"mealmate/internal/docstore"
	"mealmate/internal/mealplan"
	"mealmate/internal/metrics"
	"mealmate/internal/profile"
	"mealmate/internal/realtime"
	"mealmate/internal/shopping"
	"mealmate/internal/today"
)

const usageWindowDays = 30

// Server wires the domain services into HTTP handlers. Every route except
// session creation requires a bearer token.
type Server struct {
	docs      docstore.Store
	shopping  *shopping.Manager
	plans     *mealplan.Store
	generator *mealplan.Generator
	profiles  *profile.Store
	metrics   *metrics.Store
	device    *devicestore.DB
	auth      *auth.Service
	logger    *logrus.Logger
	mux       *http.ServeMux
}

// NewServer creates a Server, registers all routes, and returns it.
func NewServer(
	docs docstore.Store,
	shoppingManager *shopping.Manager,
	plans *mealplan.Store,
	generator *mealplan.Generator,
	profiles *profile.Store,
	metricsStore *metrics.Store,
	device *devicestore.DB,
	authService *auth.Service,
	logger *logrus.Logger,
) *Server {
	s := &Server{
		docs:      docs,
		shopping:  shoppingManager,
		plans:     plans,
		generator: generator,
		profiles:  profiles,
		metrics:   metricsStore,
		device:    device,
		auth:      authService,
		logger:    logger,
		mux:       http.NewServeMux(),
	}
	s.routes()
	return s
}

// Handler returns the http.Handler that can be passed to http.Server.
func (s *Server) Handler() http.Handler {
	outer := http.NewServeMux()
	outer.HandleFunc("POST /api/session", s.handleCreateSession)
	outer.Handle("/api/", s.auth.Middleware(s.mux))
	return outer
}

// ---------------------------------------------------------------------------
// Routes
// ---------------------------------------------------------------------------

func (s *Server) routes() {
	// Home screen
	s.mux.HandleFunc("GET /api/summary", s.handleGetSummary)
	s.mux.HandleFunc("GET /api/next-meal", s.handleGetNextMeal)

	// Meal plan
	s.mux.HandleFunc("GET /api/plan", s.handleGetPlan)
	s.mux.HandleFunc("POST /api/plan/generate", s.handleGeneratePlan)
	s.mux.HandleFunc("POST /api/plan/copy", s.handleCopyMeal)

	// Shopping list
	s.mux.HandleFunc("GET /api/shopping", s.handleGetShoppingList)
	s.mux.HandleFunc("POST /api/shopping", s.handleAddItem)
	s.mux.HandleFunc("POST /api/shopping/generate", s.handleGenerateShoppingList)
	s.mux.HandleFunc("POST /api/shopping/move", s.handleMoveToStock)
	s.mux.HandleFunc("GET /api/shopping/membership", s.handleGetMembership)
	s.mux.HandleFunc("POST /api/shopping/{index}/toggle", s.handleToggleItem)
	s.mux.HandleFunc("DELETE /api/shopping/{index}", s.handleRemoveItem)

	// Stock
	s.mux.HandleFunc("GET /api/stock", s.handleGetStock)
	s.mux.HandleFunc("PUT /api/stock/quantity", s.handleEditStockQuantity)
	s.mux.HandleFunc("DELETE /api/stock/{name}", s.handleRemoveStockItem)

	// Profile & usage
	s.mux.HandleFunc("GET /api/profile", s.handleGetProfile)
	s.mux.HandleFunc("PUT /api/profile", s.handleUpdateProfile)
	s.mux.HandleFunc("GET /api/usage", s.handleGetUsage)

	// Realtime document streams
	s.mux.HandleFunc("GET /api/watch/{collection}", s.handleWatch)

	// Per-device client state
	s.mux.HandleFunc("GET /api/device/{key}", s.handleGetDeviceValue)
	s.mux.HandleFunc("PUT /api/device/{key}", s.handlePutDeviceValue)
	s.mux.HandleFunc("DELETE /api/device/{key}", s.handleDeleteDeviceValue)
}

// ---------------------------------------------------------------------------
// JSON helpers
// ---------------------------------------------------------------------------

func (s *Server) respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			s.logger.WithError(err).Error("failed to encode JSON response")
		}
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

// decodeJSON reads the request body into dst and returns an error message on
// failure.  The caller should return immediately when ok == false.
func (s *Server) decodeJSON(r *http.Request, dst any) (ok bool, errMsg string) {
	if r.Body == nil {
		return false, "request body is empty"
	}
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return false, fmt.Sprintf("invalid JSON: %v", err)
	}
	return true, ""
}

// accountID reads the authenticated account from the request.  It writes an
// error response and returns "" when the middleware did not run.
func (s *Server) accountID(w http.ResponseWriter, r *http.Request) string {
	accountID, ok := auth.AccountID(r.Context())
	if !ok {
		s.respondError(w, http.StatusUnauthorized, "missing session")
		return ""
	}
	return accountID
}

// pathIndex extracts the {index} path value and converts it to int.
func pathIndex(r *http.Request) (int, error) {
	raw := r.PathValue("index")
	if raw == "" {
		return 0, fmt.Errorf("missing index in path")
	}
	return strconv.Atoi(raw)
}

// ---------------------------------------------------------------------------
// Session
// ---------------------------------------------------------------------------

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		AccountID string `json:"accountId"`
	}
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.AccountID == "" {
		s.respondError(w, http.StatusBadRequest, "accountId is required")
		return
	}
	token, err := s.auth.IssueToken(req.AccountID)
	if err != nil {
		s.logger.WithError(err).Error("failed to issue session token")
		s.respondError(w, http.StatusInternalServerError, "failed to create session")
		return
	}
	s.respondJSON(w, http.StatusCreated, map[string]string{"token": token})
}

// ---------------------------------------------------------------------------
// Home screen
// ---------------------------------------------------------------------------

func (s *Server) handleGetSummary(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	plan := s.plans.Load(r.Context(), accountID)
	items, err := s.shopping.ShoppingList(r.Context(), accountID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load shopping list")
		s.respondError(w, http.StatusInternalServerError, "failed to build summary")
		return
	}
	s.respondJSON(w, http.StatusOK, today.Summarize(plan, items, time.Now()))
}

func (s *Server) handleGetNextMeal(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	plan := s.plans.Load(r.Context(), accountID)
	period, recipe := today.NextMealRecipe(plan, time.Now())
	s.respondJSON(w, http.StatusOK, map[string]any{
		"period": period,
		"recipe": recipe,
	})
}

// ---------------------------------------------------------------------------
// Meal plan
// ---------------------------------------------------------------------------

func (s *Server) handleGetPlan(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	s.respondJSON(w, http.StatusOK, s.plans.Load(r.Context(), accountID))
}

func (s *Server) handleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	var req struct {
		Start   string   `json:"start"`
		Days    int      `json:"days"`
		Periods []string `json:"periods"`
	}
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}

	start := time.Now()
	if req.Start != "" {
		parsed, err := time.Parse(mealplan.DateKeyLayout, req.Start)
		if err != nil {
			s.respondError(w, http.StatusBadRequest, "start must be formatted YYYY-MM-DD")
			return
		}
		start = parsed
	}

	periods := make([]mealplan.Period, 0, len(req.Periods))
	for _, p := range req.Periods {
		period := mealplan.Period(p)
		switch period {
		case mealplan.PeriodBreakfast, mealplan.PeriodLunch, mealplan.PeriodDinner:
			periods = append(periods, period)
		default:
			s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown meal period %q", p))
			return
		}
	}
	if len(periods) == 0 {
		periods = mealplan.Periods
	}

	prof, err := s.profiles.Load(r.Context(), accountID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load profile")
		s.respondError(w, http.StatusInternalServerError, "failed to generate meal plan")
		return
	}
	existing := s.plans.Load(r.Context(), accountID)

	started := time.Now()
	plan, stats, err := s.generator.Generate(r.Context(), start, req.Days, periods, prof.DietFilters(), existing)
	if err != nil {
		if errors.Is(err, mealplan.ErrInvalidDayCount) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.WithError(err).Error("failed to generate meal plan")
		s.respondError(w, http.StatusInternalServerError, "failed to generate meal plan")
		return
	}
	if err := s.plans.Save(r.Context(), accountID, plan); err != nil {
		s.logger.WithError(err).Error("failed to save meal plan")
		s.respondError(w, http.StatusInternalServerError, "failed to save meal plan")
		return
	}

	metric := metrics.GenerationMetric{
		AccountID:      accountID,
		SlotsRequested: stats.SlotsRequested,
		SlotsFilled:    stats.SlotsFilled,
		SlotsFailed:    stats.SlotsFailed,
		LatencyMS:      time.Since(started).Milliseconds(),
	}
	if err := s.metrics.Record(r.Context(), metric); err != nil {
		// The plan is already saved; a metrics failure must not fail the run.
		s.logger.WithError(err).Warn("failed to record generation metric")
	}

	s.respondJSON(w, http.StatusOK, map[string]any{
		"plan":  plan,
		"stats": stats,
	})
}

func (s *Server) handleCopyMeal(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	var req struct {
		Recipe     mealplan.Recipe `json:"recipe"`
		TargetDate string          `json:"targetDate"`
		Period     string          `json:"period"`
	}
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if _, err := time.Parse(mealplan.DateKeyLayout, req.TargetDate); err != nil {
		s.respondError(w, http.StatusBadRequest, "targetDate must be formatted YYYY-MM-DD")
		return
	}
	period := mealplan.Period(req.Period)
	switch period {
	case mealplan.PeriodBreakfast, mealplan.PeriodLunch, mealplan.PeriodDinner:
	default:
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown meal period %q", req.Period))
		return
	}
	if req.Recipe.Name == "" {
		s.respondError(w, http.StatusBadRequest, "recipe name is required")
		return
	}

	plan := s.plans.Load(r.Context(), accountID)
	plan = s.generator.CopyMeal(req.Recipe, req.TargetDate, period, plan)
	if err := s.plans.Save(r.Context(), accountID, plan); err != nil {
		s.logger.WithError(err).Error("failed to save meal plan")
		s.respondError(w, http.StatusInternalServerError, "failed to save meal plan")
		return
	}
	s.respondJSON(w, http.StatusOK, plan)
}

// ---------------------------------------------------------------------------
// Shopping list
// ---------------------------------------------------------------------------

func (s *Server) handleGetShoppingList(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	items, err := s.shopping.ShoppingList(r.Context(), accountID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load shopping list")
		s.respondError(w, http.StatusInternalServerError, "failed to load shopping list")
		return
	}
	s.respondJSON(w, http.StatusOK, itemsPayload(items))
}

func (s *Server) handleAddItem(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	items, err := s.shopping.AddItem(r.Context(), accountID, req.Name)
	if err != nil {
		if errors.Is(err, shopping.ErrDuplicateItem) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.WithError(err).Error("failed to add shopping item")
		s.respondError(w, http.StatusInternalServerError, "failed to add shopping item")
		return
	}
	s.respondJSON(w, http.StatusOK, itemsPayload(items))
}

func (s *Server) handleToggleItem(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	index, err := pathIndex(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	items, err := s.shopping.ToggleChecked(r.Context(), accountID, index)
	if err != nil {
		if errors.Is(err, shopping.ErrIndexOutOfRange) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.WithError(err).Error("failed to toggle shopping item")
		s.respondError(w, http.StatusInternalServerError, "failed to toggle shopping item")
		return
	}
	s.respondJSON(w, http.StatusOK, itemsPayload(items))
}

func (s *Server) handleRemoveItem(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	index, err := pathIndex(r)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, "index must be an integer")
		return
	}
	items, err := s.shopping.RemoveItem(r.Context(), accountID, index)
	if err != nil {
		if errors.Is(err, shopping.ErrIndexOutOfRange) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.WithError(err).Error("failed to remove shopping item")
		s.respondError(w, http.StatusInternalServerError, "failed to remove shopping item")
		return
	}
	s.respondJSON(w, http.StatusOK, itemsPayload(items))
}

func (s *Server) handleMoveToStock(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	var req struct {
		Name string `json:"name"`
	}
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Name == "" {
		s.respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	items, stock, err := s.shopping.MoveToStock(r.Context(), accountID, req.Name)
	if err != nil {
		s.logger.WithError(err).Error("failed to move item to stock")
		s.respondError(w, http.StatusInternalServerError, "failed to move item to stock")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]any{
		"items": itemsPayload(items).Items,
		"stock": stockPayload(stock).Items,
	})
}

func (s *Server) handleGenerateShoppingList(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	plan := s.plans.Load(r.Context(), accountID)
	items, err := s.shopping.GenerateFromMealPlan(r.Context(), accountID, plan)
	if err != nil {
		s.logger.WithError(err).Error("failed to generate shopping list")
		s.respondError(w, http.StatusInternalServerError, "failed to generate shopping list")
		return
	}
	s.respondJSON(w, http.StatusOK, itemsPayload(items))
}

func (s *Server) handleGetMembership(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	name := r.URL.Query().Get("name")
	if name == "" {
		s.respondError(w, http.StatusBadRequest, "name query parameter is required")
		return
	}
	items, err := s.shopping.ShoppingList(r.Context(), accountID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load shopping list")
		s.respondError(w, http.StatusInternalServerError, "failed to check item")
		return
	}
	stock, err := s.shopping.Stock(r.Context(), accountID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load stock")
		s.respondError(w, http.StatusInternalServerError, "failed to check item")
		return
	}
	s.respondJSON(w, http.StatusOK, shopping.ItemMembership(name, items, stock))
}

// ---------------------------------------------------------------------------
// Stock
// ---------------------------------------------------------------------------

func (s *Server) handleGetStock(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	stock, err := s.shopping.Stock(r.Context(), accountID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load stock")
		s.respondError(w, http.StatusInternalServerError, "failed to load stock")
		return
	}
	s.respondJSON(w, http.StatusOK, stockPayload(stock))
}

func (s *Server) handleEditStockQuantity(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	var req struct {
		Name     string `json:"name"`
		Quantity string `json:"quantity"`
	}
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if req.Name == "" {
		s.respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	stock, err := s.shopping.EditStockQuantity(r.Context(), accountID, req.Name, req.Quantity)
	if err != nil {
		if errors.Is(err, shopping.ErrInvalidQuantity) {
			s.respondError(w, http.StatusBadRequest, err.Error())
			return
		}
		s.logger.WithError(err).Error("failed to edit stock quantity")
		s.respondError(w, http.StatusInternalServerError, "failed to edit stock quantity")
		return
	}
	s.respondJSON(w, http.StatusOK, stockPayload(stock))
}

func (s *Server) handleRemoveStockItem(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	name := r.PathValue("name")
	if name == "" {
		s.respondError(w, http.StatusBadRequest, "missing name in path")
		return
	}
	stock, err := s.shopping.RemoveStockItem(r.Context(), accountID, name)
	if err != nil {
		s.logger.WithError(err).Error("failed to remove stock item")
		s.respondError(w, http.StatusInternalServerError, "failed to remove stock item")
		return
	}
	s.respondJSON(w, http.StatusOK, stockPayload(stock))
}

// ---------------------------------------------------------------------------
// Profile & usage
// ---------------------------------------------------------------------------

func (s *Server) handleGetProfile(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	prof, err := s.profiles.Load(r.Context(), accountID)
	if err != nil {
		s.logger.WithError(err).Error("failed to load profile")
		s.respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	s.respondJSON(w, http.StatusOK, prof)
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	var prof profile.Profile
	if ok, msg := s.decodeJSON(r, &prof); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	if prof.CalorieGoal < 0 {
		s.respondError(w, http.StatusBadRequest, "calorieGoal must not be negative")
		return
	}
	if err := s.profiles.Save(r.Context(), accountID, prof); err != nil {
		s.logger.WithError(err).Error("failed to save profile")
		s.respondError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	s.respondJSON(w, http.StatusOK, prof)
}

func (s *Server) handleGetUsage(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	usage, err := s.metrics.Usage(r.Context(), accountID, usageWindowDays)
	if err != nil {
		s.logger.WithError(err).Error("failed to load generation usage")
		s.respondError(w, http.StatusInternalServerError, "failed to load usage")
		return
	}
	if usage == nil {
		usage = []metrics.DailyUsage{}
	}
	s.respondJSON(w, http.StatusOK, usage)
}

// ---------------------------------------------------------------------------
// Realtime document streams
// ---------------------------------------------------------------------------

var watchCollections = map[string]docstore.Kind{
	"shopping": docstore.KindShoppingLists,
	"stock":    docstore.KindStocks,
	"plan":     docstore.KindMealPlans,
	"profile":  docstore.KindUsers,
}

// handleWatch streams the account's document as server-sent events: the
// current state first, then the full document on every remote change. The
// stream stays open until the client disconnects.
func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	kind, ok := watchCollections[r.PathValue("collection")]
	if !ok {
		s.respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown collection %q", r.PathValue("collection")))
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		s.respondError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Buffered so a slow client skips intermediate states instead of
	// blocking the store's notification path.
	updates := make(chan json.RawMessage, 8)
	mirror, err := realtime.NewMirror(r.Context(), s.docs, kind, accountID, func(data json.RawMessage) {
		select {
		case updates <- data:
		default:
		}
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to subscribe to document")
		s.respondError(w, http.StatusInternalServerError, "failed to watch collection")
		return
	}
	defer mirror.Close()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.WriteHeader(http.StatusOK)

	for {
		select {
		case <-r.Context().Done():
			return
		case data := <-updates:
			if data == nil {
				data = json.RawMessage("null")
			}
			fmt.Fprintf(w, "data: %s\n\n", data)
			flusher.Flush()
		}
	}
}

// ---------------------------------------------------------------------------
// Per-device client state
// ---------------------------------------------------------------------------

func (s *Server) handleGetDeviceValue(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	key := r.PathValue("key")
	value, err := s.device.Get(r.Context(), accountID, key)
	if err != nil {
		if errors.Is(err, devicestore.ErrKeyNotFound) {
			s.respondError(w, http.StatusNotFound, "key not found")
			return
		}
		s.logger.WithError(err).Error("failed to read device value")
		s.respondError(w, http.StatusInternalServerError, "failed to read device value")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"key": key, "value": value})
}

func (s *Server) handlePutDeviceValue(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	var req struct {
		Value string `json:"value"`
	}
	if ok, msg := s.decodeJSON(r, &req); !ok {
		s.respondError(w, http.StatusBadRequest, msg)
		return
	}
	key := r.PathValue("key")
	if err := s.device.Put(r.Context(), accountID, key, req.Value); err != nil {
		s.logger.WithError(err).Error("failed to store device value")
		s.respondError(w, http.StatusInternalServerError, "failed to store device value")
		return
	}
	s.respondJSON(w, http.StatusOK, map[string]string{"key": key, "value": req.Value})
}

func (s *Server) handleDeleteDeviceValue(w http.ResponseWriter, r *http.Request) {
	accountID := s.accountID(w, r)
	if accountID == "" {
		return
	}
	if err := s.device.Delete(r.Context(), accountID, r.PathValue("key")); err != nil {
		s.logger.WithError(err).Error("failed to delete device value")
		s.respondError(w, http.StatusInternalServerError, "failed to delete device value")
		return
	}
	s.respondJSON(w, http.StatusNoContent, nil)
}

// ---------------------------------------------------------------------------
// Payload helpers
// ---------------------------------------------------------------------------

type itemsResponse struct {
	Items []shopping.Item `json:"items"`
}

type stockResponse struct {
	Items []shopping.StockItem `json:"items"`
}

func itemsPayload(items []shopping.Item) itemsResponse {
	if items == nil {
		items = []shopping.Item{}
	}
	return itemsResponse{Items: items}
}

func stockPayload(stock []shopping.StockItem) stockResponse {
	if stock == nil {
		stock = []shopping.StockItem{}
	}
	return stockResponse{Items: stock}
}
