package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"otcpharm/m/domain"
	"otcpharm/m/internal/auth"
	"otcpharm/m/internal/config"
	"otcpharm/m/internal/service"
	"otcpharm/m/internal/store"
)

// Handler bundles dependencies for HTTP handlers.
type Handler struct {
	store  *store.Store
	access *service.AccessService
	carts  *service.CartService
	users  *service.UserService
	authn  auth.Authenticator
	cfg    config.Config
	log    *zap.Logger
}

// New constructs a Handler with its services wired to the store.
func New(st *store.Store, authn auth.Authenticator, cfg config.Config, log *zap.Logger) *Handler {
	return &Handler{
		store:  st,
		access: service.NewAccessService(st, log),
		carts:  service.NewCartService(st, log),
		users:  service.NewUserService(st, log),
		authn:  authn,
		cfg:    cfg,
		log:    log,
	}
}

// Router wires up the HTTP API for the configured deployment variant.
// The header variant serves the common route set under /api; the token
// variant serves it unprefixed and adds the cart, detail and geocoding
// routes.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(h.requestLogger)

	if h.cfg.AuthMode == config.AuthModeHeader {
		r.Route("/api", func(r chi.Router) {
			h.mountCommon(r)
		})
		return r
	}

	h.mountCommon(r)

	r.Get("/medications/{id}", h.getMedication)
	r.Get("/pharmacies/{id}", h.getPharmacy)
	r.Get("/google-maps-api-key", h.googleMapsKey)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(h.authn))
		pr.Get("/cart", h.getCart)
		pr.Post("/cart/add", h.addToCart)
		pr.Patch("/cart/items/{id}", h.updateCartItem)
		pr.Delete("/cart/items/{id}", h.removeCartItem)
	})

	return r
}

func (h *Handler) mountCommon(r chi.Router) {
	r.Get("/health", h.health)
	r.Get("/medications", h.listMedications)
	r.Get("/pharmacies", h.listPharmacies)
	r.Post("/auth/sync-user", h.syncUser)

	r.Group(func(pr chi.Router) {
		pr.Use(auth.Middleware(h.authn))

		pr.Post("/medications", h.createMedication)
		pr.Post("/pharmacies", h.createPharmacy)

		pr.Get("/inventory", h.getInventory)
		pr.Post("/inventory", h.createInventory)
		pr.Delete("/inventory/{id}", h.deleteInventory)

		pr.Get("/auth/user", h.getUser)
		pr.Post("/auth/setup-pharmacy", h.setupPharmacy)
		pr.Post("/auth/assign-pharmacy", h.assignPharmacy)
	})
}

func (h *Handler) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		h.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Duration("duration", time.Since(start)))
	})
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// otcOnly reports whether this deployment restricts the medication
// catalog to over-the-counter items.
func (h *Handler) otcOnly() bool {
	return h.cfg.AuthMode == config.AuthModeHeader
}

// respondOutcome translates a service error into the status taxonomy:
// 404 for missing resources, 403 for ownership violations, 400 for
// blocked preconditions, 500 with the raw message otherwise.
func (h *Handler) respondOutcome(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrUnauthorized):
		respondError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrPharmacyRequired):
		respondError(w, http.StatusBadRequest, err.Error())
	default:
		respondError(w, http.StatusInternalServerError, err.Error())
	}
}

// Medication handlers

type medicationRequest struct {
	Name                 string  `json:"name"`
	Description          string  `json:"description"`
	Strength             string  `json:"strength"`
	Dosage               string  `json:"dosage"`
	Manufacturer         string  `json:"manufacturer"`
	Category             string  `json:"category"`
	Price                float64 `json:"price"`
	IsOTC                *bool   `json:"is_otc"`
	RequiresPrescription bool    `json:"requires_prescription"`
	ImageURL             *string `json:"image_url"`
}

func (h *Handler) listMedications(w http.ResponseWriter, r *http.Request) {
	medications, err := h.store.ListMedications(r.Context(), h.otcOnly())
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, medications)
}

func (h *Handler) getMedication(w http.ResponseWriter, r *http.Request) {
	medication, err := h.store.GetMedication(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNoRows(err) {
			respondError(w, http.StatusNotFound, "medication not found")
			return
		}
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, medication)
}

func (h *Handler) createMedication(w http.ResponseWriter, r *http.Request) {
	var req medicationRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}

	isOTC := true
	if req.IsOTC != nil {
		isOTC = *req.IsOTC
	}
	requiresPrescription := req.RequiresPrescription
	if h.otcOnly() {
		if !isOTC {
			respondError(w, http.StatusBadRequest, "only over-the-counter (OTC) medications are allowed")
			return
		}
		isOTC = true
		requiresPrescription = false
	}

	medication, err := h.store.CreateMedication(r.Context(), domain.Medication{
		Name:                 req.Name,
		Description:          req.Description,
		Strength:             req.Strength,
		Dosage:               req.Dosage,
		Manufacturer:         req.Manufacturer,
		Category:             req.Category,
		Price:                req.Price,
		IsOTC:                isOTC,
		RequiresPrescription: requiresPrescription,
		ImageURL:             req.ImageURL,
	})
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, medication)
}

// Pharmacy handlers

type pharmacyRequest struct {
	Name          string `json:"name"`
	Address       string `json:"address"`
	Phone         string `json:"phone"`
	Hours         string `json:"hours"`
	IsOpen24Hours bool   `json:"is_open_24_hours"`
	IsActive      *bool  `json:"is_active"`
}

func (h *Handler) listPharmacies(w http.ResponseWriter, r *http.Request) {
	pharmacies, err := h.store.ListPharmacies(r.Context(), true)
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pharmacies)
}

func (h *Handler) getPharmacy(w http.ResponseWriter, r *http.Request) {
	pharmacy, err := h.store.GetPharmacy(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if isNoRows(err) {
			respondError(w, http.StatusNotFound, "pharmacy not found")
			return
		}
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pharmacy)
}

func (h *Handler) createPharmacy(w http.ResponseWriter, r *http.Request) {
	var req pharmacyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "name is required")
		return
	}
	hours := req.Hours
	if hours == "" {
		hours = "24/7"
	}
	active := true
	if req.IsActive != nil {
		active = *req.IsActive
	}
	pharmacy, err := h.store.CreatePharmacy(r.Context(), domain.Pharmacy{
		Name:          req.Name,
		Address:       req.Address,
		Phone:         req.Phone,
		Hours:         hours,
		IsOpen24Hours: req.IsOpen24Hours,
		IsActive:      active,
	})
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, pharmacy)
}

// Inventory handlers

type inventoryRequest struct {
	MedicationID  string   `json:"medication_id"`
	Quantity      int64    `json:"quantity"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price"`
	ExpiryDate    *string  `json:"expiry_date"`
	BatchNumber   *string  `json:"batch_number"`
}

type inventoryResponse struct {
	Items      []domain.InventoryItem `json:"items"`
	NeedsSetup bool                   `json:"needsSetup"`
}

func (h *Handler) getInventory(w http.ResponseWriter, r *http.Request) {
	pharmacyID, needsSetup, err := h.access.ResolvePharmacy(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	if needsSetup {
		respondJSON(w, http.StatusOK, inventoryResponse{Items: []domain.InventoryItem{}, NeedsSetup: true})
		return
	}
	items, err := h.store.ListInventory(r.Context(), pharmacyID)
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, inventoryResponse{Items: items, NeedsSetup: false})
}

func (h *Handler) createInventory(w http.ResponseWriter, r *http.Request) {
	pharmacyID, needsSetup, err := h.access.ResolvePharmacy(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	if needsSetup {
		h.respondOutcome(w, service.ErrPharmacyRequired)
		return
	}

	var req inventoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.MedicationID == "" {
		respondError(w, http.StatusBadRequest, "medication_id is required")
		return
	}

	item, err := h.store.CreateInventoryItem(r.Context(), domain.InventoryItem{
		PharmacyID:    pharmacyID,
		MedicationID:  req.MedicationID,
		Quantity:      req.Quantity,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		InStock:       req.Quantity > 0,
		ExpiryDate:    req.ExpiryDate,
		BatchNumber:   req.BatchNumber,
	})
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, item)
}

func (h *Handler) deleteInventory(w http.ResponseWriter, r *http.Request) {
	item, err := h.access.AuthorizeInventory(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	if err := h.store.DeleteInventoryItem(r.Context(), item.ID); err != nil {
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Auth handlers

type syncUserRequest struct {
	AuthUID         string  `json:"auth_uid"`
	Email           string  `json:"email"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	ProfileImageURL *string `json:"profile_image_url"`
}

func (h *Handler) syncUser(w http.ResponseWriter, r *http.Request) {
	var req syncUserRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.AuthUID == "" || req.Email == "" {
		respondError(w, http.StatusBadRequest, "auth_uid and email are required")
		return
	}

	user, created, err := h.users.Sync(r.Context(), domain.User{
		ID:              req.AuthUID,
		Email:           req.Email,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		ProfileImageURL: req.ProfileImageURL,
	})
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	respondJSON(w, status, user)
}

func (h *Handler) getUser(w http.ResponseWriter, r *http.Request) {
	user, err := h.users.Get(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

func (h *Handler) setupPharmacy(w http.ResponseWriter, r *http.Request) {
	pharmacyID, created, err := h.access.SetupPharmacy(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	payload := map[string]any{"success": true, "pharmacy_id": pharmacyID}
	if !created {
		payload["message"] = "pharmacy already set up"
	}
	respondJSON(w, http.StatusOK, payload)
}

type assignPharmacyRequest struct {
	PharmacyID string `json:"pharmacy_id"`
}

func (h *Handler) assignPharmacy(w http.ResponseWriter, r *http.Request) {
	var req assignPharmacyRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.PharmacyID == "" {
		respondError(w, http.StatusBadRequest, "pharmacy_id is required")
		return
	}
	user, err := h.access.AssignPharmacy(r.Context(), auth.UserID(r.Context()), req.PharmacyID)
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}

// Cart handlers

type addToCartRequest struct {
	MedicationID string `json:"medication_id"`
	Quantity     int64  `json:"quantity"`
}

func (h *Handler) getCart(w http.ResponseWriter, r *http.Request) {
	view, err := h.carts.GetCart(r.Context(), auth.UserID(r.Context()))
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

func (h *Handler) addToCart(w http.ResponseWriter, r *http.Request) {
	var req addToCartRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.MedicationID == "" {
		respondError(w, http.StatusBadRequest, "medication_id is required")
		return
	}
	if req.Quantity < 0 {
		respondError(w, http.StatusBadRequest, "quantity must be positive")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	item, err := h.carts.AddItem(r.Context(), auth.UserID(r.Context()), req.MedicationID, req.Quantity)
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

type updateCartItemRequest struct {
	Quantity int64 `json:"quantity"`
}

func (h *Handler) updateCartItem(w http.ResponseWriter, r *http.Request) {
	var req updateCartItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.Quantity < 1 {
		respondError(w, http.StatusBadRequest, "quantity must be at least 1")
		return
	}
	item, err := h.carts.UpdateItemQuantity(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id"), req.Quantity)
	if err != nil {
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, item)
}

func (h *Handler) removeCartItem(w http.ResponseWriter, r *http.Request) {
	if err := h.carts.RemoveItem(r.Context(), auth.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		h.respondOutcome(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Geocoding

func (h *Handler) googleMapsKey(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"apiKey": h.cfg.GoogleMapsAPIKey})
}

// Helpers

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}

func decodeJSON(r *http.Request, dest interface{}) error {
	return json.NewDecoder(r.Body).Decode(dest)
}

func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	encoder := json.NewEncoder(w)
	encoder.SetEscapeHTML(false)
	_ = encoder.Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
