package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/services"
	"github.com/fiscalis/dgi-api/store"
)

func init() {
	logger.InitLogger("test")
	gin.SetMode(gin.TestMode)
}

// newTestRouter wires the full route surface onto a fresh seeded store.
func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	st, err := store.NewFromSeed()
	require.NoError(t, err)
	return routerFor(st)
}

func routerFor(st *store.Store) *gin.Engine {
	router := gin.New()

	healthHandler := NewHealthHandler(st)
	taxpayerHandler := NewTaxpayerHandler(services.NewTaxpayerService(st))
	municipalityHandler := NewMunicipalityHandler(services.NewMunicipalityService(st))
	establishmentHandler := NewEstablishmentHandler(services.NewEstablishmentService(st))
	declarationHandler := NewDeclarationHandler(services.NewDeclarationService(st))
	paymentHandler := NewPaymentHandler(services.NewPaymentService(st))
	noticeHandler := NewNoticeHandler(services.NewNoticeService(st))
	enforcementHandler := NewEnforcementHandler(services.NewEnforcementService(st))
	notificationHandler := NewNotificationHandler(services.NewNotificationService(st))
	dashboardHandler := NewDashboardHandler(services.NewDashboardService(st))
	fiscalHandler := NewFiscalHandler(services.NewFiscalService(st))

	router.GET("/", healthHandler.AppBanner)

	api := router.Group("/api")
	api.GET("/health", healthHandler.HealthCheck)
	api.GET("/contribuables", taxpayerHandler.ListTaxpayers)
	api.GET("/contribuables/:id", taxpayerHandler.GetTaxpayer)
	api.POST("/contribuables", taxpayerHandler.CreateTaxpayer)
	api.PUT("/contribuables/:id", taxpayerHandler.UpdateTaxpayer)
	api.DELETE("/contribuables/:id", taxpayerHandler.DeactivateTaxpayer)
	api.GET("/contribuables/:id/declarations", taxpayerHandler.ListTaxpayerDeclarations)
	api.GET("/contribuables/:id/notifications", taxpayerHandler.ListTaxpayerNotifications)
	api.GET("/communes", municipalityHandler.ListMunicipalities)
	api.POST("/communes", municipalityHandler.CreateMunicipality)
	api.GET("/etablissements", establishmentHandler.ListEstablishments)
	api.POST("/etablissements", establishmentHandler.CreateEstablishment)
	api.GET("/declarations", declarationHandler.ListDeclarations)
	api.GET("/declarations/:id", declarationHandler.GetDeclaration)
	api.POST("/declarations", declarationHandler.CreateDeclaration)
	api.PUT("/declarations/:id", declarationHandler.UpdateDeclaration)
	api.PATCH("/declarations/:id/statut", declarationHandler.ChangeDeclarationStatus)
	api.GET("/declarations/:id/paiements", declarationHandler.ListDeclarationPayments)
	api.GET("/paiements", paymentHandler.ListPayments)
	api.GET("/paiements/:id", paymentHandler.GetPayment)
	api.POST("/paiements", paymentHandler.RecordPayment)
	api.GET("/paiements/:id/beneficiaires", paymentHandler.ListPaymentBeneficiaries)
	api.GET("/avis-imposition", noticeHandler.ListNotices)
	api.GET("/avis-imposition/:id", noticeHandler.GetNotice)
	api.GET("/AMR", enforcementHandler.ListEnforcements)
	api.POST("/AMR", enforcementHandler.CreateEnforcement)
	api.PATCH("/AMR/:id/statut", enforcementHandler.ChangeEnforcementStatus)
	api.GET("/notifications", notificationHandler.ListNotifications)
	api.PATCH("/notifications/:id/lire", notificationHandler.MarkNotificationRead)
	api.PATCH("/notifications/lire-tout", notificationHandler.MarkAllNotificationsRead)
	api.GET("/dashboard/stats", dashboardHandler.GetStats)
	api.GET("/dashboard/recettes-par-commune", dashboardHandler.GetRevenueByMunicipality)
	api.POST("/fiscal/calculer-patente", fiscalHandler.ComputeLicenseTax)
	api.POST("/fiscal/calculer-TDL", fiscalHandler.ComputeLocalDevelopmentTax)

	return router
}

func perform(router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotEmpty(t, env.Timestamp)
	return env
}

func dataMap(t *testing.T, env envelope) map[string]any {
	t.Helper()

	var m map[string]any
	require.NoError(t, json.Unmarshal(env.Data, &m))
	return m
}

func TestHealthCheck(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodGet, "/api/health", nil)
	require.Equal(t, http.StatusOK, w.Code)

	env := decodeEnvelope(t, w)
	assert.True(t, env.Success)

	data := dataMap(t, env)
	assert.Equal(t, "UP", data["status"])
	assert.Equal(t, "IN_MEMORY", data["database"])
	assert.Equal(t, float64(9), data["entities"])
}

func TestAppBanner(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodGet, "/", nil)
	require.Equal(t, http.StatusOK, w.Code)

	// The banner is the one endpoint outside the envelope.
	var info map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &info))
	assert.Equal(t, "Backend Fiscal DGI", info["application"])
	assert.NotEmpty(t, info["routes"])
}

func TestListTaxpayersPaginated(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodGet, "/api/contribuables?page=1&size=2", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, decodeEnvelope(t, w))
	assert.Equal(t, float64(3), data["totalElements"])
	assert.Equal(t, float64(2), data["totalPages"])
	assert.Equal(t, float64(1), data["currentPage"])
	assert.Len(t, data["content"], 2)
}

func TestGetTaxpayer(t *testing.T) {
	router := newTestRouter(t)

	t.Run("known id", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/contribuables/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := dataMap(t, decodeEnvelope(t, w))
		assert.Equal(t, "P038512345678A", data["NIU"])
		assert.Equal(t, "MBARGA", data["nom"])
	})

	t.Run("unknown id", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/contribuables/999", nil)
		require.Equal(t, http.StatusNotFound, w.Code)

		env := decodeEnvelope(t, w)
		assert.False(t, env.Success)
		assert.Equal(t, "Contribuable introuvable", env.Message)
	})

	t.Run("non numeric id", func(t *testing.T) {
		w := perform(router, http.MethodGet, "/api/contribuables/abc", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestCreateTaxpayer(t *testing.T) {
	router := newTestRouter(t)

	t.Run("created", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/api/contribuables", map[string]any{
			"NIU":         "M099912345678B",
			"nom":         "ESSOMBA",
			"prenom":      "Claire",
			"email":       "claire.essomba@example.cm",
			"id_commune":  2,
			"observation": "Nouveau commerce",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		data := dataMap(t, decodeEnvelope(t, w))
		assert.Equal(t, float64(4), data["id_contribuable"])
		assert.Equal(t, "ACTIF", data["statut"])
	})

	t.Run("duplicate NIU conflicts", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/api/contribuables", map[string]any{
			"NIU":   "P038512345678A",
			"email": "dup@example.cm",
		})
		require.Equal(t, http.StatusConflict, w.Code)
		assert.Equal(t, "Un contribuable avec ce NIU existe déjà", decodeEnvelope(t, w).Message)
	})

	t.Run("missing fields", func(t *testing.T) {
		w := perform(router, http.MethodPost, "/api/contribuables", map[string]any{"nom": "SEUL"})
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "NIU et email sont obligatoires", decodeEnvelope(t, w).Message)
	})

	t.Run("malformed body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/api/contribuables", bytes.NewReader([]byte("{not json")))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Corps de requête JSON invalide", decodeEnvelope(t, w).Message)
	})
}

func TestDeactivateTaxpayer(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodDelete, "/api/contribuables/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := dataMap(t, decodeEnvelope(t, w))
	assert.Equal(t, "Contribuable désactivé avec succès", data["message"])

	w = perform(router, http.MethodGet, "/api/contribuables/3", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "SUPPRIME", dataMap(t, decodeEnvelope(t, w))["statut"])
}

func TestDeclarationLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	// Submit a new declaration for the seeded taxpayer 1.
	w := perform(router, http.MethodPost, "/api/declarations", map[string]any{
		"id_contribuable":  1,
		"type_declaration": "igs",
		"annee_fiscale":    2024,
		"montant_a_payer":  80000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	created := dataMap(t, decodeEnvelope(t, w))
	assert.Equal(t, "DEC-2024-00005", created["reference_declaration"])
	assert.Equal(t, "IGS", created["type_declaration"])
	assert.Equal(t, "EN_COURS", created["statut"])
	declarationID := int(created["id_declaration"].(float64))

	// Validation generates an assessment notice on top of the seeded two.
	w = perform(router, http.MethodPatch, "/api/declarations/5/statut", map[string]any{"statut": "VALIDEE"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "VALIDEE", dataMap(t, decodeEnvelope(t, w))["statut"])

	w = perform(router, http.MethodGet, "/api/avis-imposition", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var notices []map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &notices))
	assert.Len(t, notices, 3)

	// Pay it and check the ventilation endpoint.
	w = perform(router, http.MethodPost, "/api/paiements", map[string]any{
		"id_declaration": declarationID,
		"montant_paye":   80000,
		"mode_paiement":  "MOBILE_MONEY",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	payment := dataMap(t, decodeEnvelope(t, w))
	paymentID := int(payment["id_paiement"].(float64))
	assert.Equal(t, "EFFECTUE", payment["statut"])

	w = perform(router, http.MethodGet, "/api/paiements/"+strconv.Itoa(paymentID)+"/beneficiaires", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var beneficiaries []map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &beneficiaries))
	require.Len(t, beneficiaries, 2)
	assert.Equal(t, "Commune", beneficiaries[0]["nom_beneficiaire"])
	assert.Equal(t, float64(48000), beneficiaries[0]["montant_ventile"])
	assert.Equal(t, float64(32000), beneficiaries[1]["montant_ventile"])
}

func TestRecordPaymentRejectsUnvalidatedDeclaration(t *testing.T) {
	router := newTestRouter(t)

	// Seeded declaration 2 is EN_COURS.
	w := perform(router, http.MethodPost, "/api/paiements", map[string]any{
		"id_declaration": 2,
		"montant_paye":   250000,
		"mode_paiement":  "VIREMENT",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	env := decodeEnvelope(t, w)
	assert.False(t, env.Success)
	assert.Equal(t, "Impossible de payer une déclaration non validée", env.Message)
}

func TestChangeDeclarationStatusRejectsUnknownStatus(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodPatch, "/api/declarations/2/statut", map[string]any{"statut": "VALIDATED"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Statut invalide. Valeurs: EN_COURS, VALIDEE, REJETEE, ANNULEE", decodeEnvelope(t, w).Message)
}

func TestListDeclarationsFiltered(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodGet, "/api/declarations?statut=validee", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, decodeEnvelope(t, w))
	assert.Equal(t, float64(2), data["totalElements"])
}

func TestCreateEnforcementOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodPost, "/api/AMR", map[string]any{
		"id_contribuable": 2,
		"motif":           "Imposition non réglée",
		"montant_initial": 100000,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	data := dataMap(t, decodeEnvelope(t, w))
	assert.Equal(t, float64(10000), data["montant_majorations"])
	assert.Equal(t, float64(110000), data["montant_total"])
	assert.Equal(t, "EN_COURS", data["statut"])
}

func TestEnforcementStatusTransitionOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodPatch, "/api/AMR/1/statut", map[string]any{"statut": "APURE"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "APURE", dataMap(t, decodeEnvelope(t, w))["statut"])

	w = perform(router, http.MethodPatch, "/api/AMR/1/statut", map[string]any{"statut": "SOLDE"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Statut invalide. Valeurs: EN_COURS, APURE, CONTESTE, ANNULE", decodeEnvelope(t, w).Message)
}

func TestMarkAllNotificationsRead(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodPatch, "/api/notifications/lire-tout", map[string]any{})
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(router, http.MethodGet, "/api/notifications?statut=NON_LU", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var remaining []map[string]any
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, w).Data, &remaining))
	assert.Empty(t, remaining)
}

func TestMarkSingleNotificationRead(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodPatch, "/api/notifications/1/lire", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "LU", dataMap(t, decodeEnvelope(t, w))["statut"])

	w = perform(router, http.MethodPatch, "/api/notifications/999/lire", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Notification introuvable", decodeEnvelope(t, w).Message)
}

func TestComputeLicenseTaxOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodPost, "/api/fiscal/calculer-patente", map[string]any{
		"chiffre_affaire": 1000000,
		"type_activite":   "INDUSTRIE",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, decodeEnvelope(t, w))
	assert.Equal(t, "2.5%", data["taux_applique"])
	assert.Equal(t, float64(25000), data["droit_patente"])
	assert.Equal(t, float64(2500), data["centimes_additionnels"])
	assert.Equal(t, float64(27500), data["montant_total"])
}

func TestComputeLocalDevelopmentTaxOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodPost, "/api/fiscal/calculer-TDL", map[string]any{
		"surface_m2": 200,
		"commune":    "Mbalmayo",
	})
	require.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, decodeEnvelope(t, w))
	assert.Equal(t, float64(1500), data["tarif_m2"])
	assert.Equal(t, float64(300000), data["montant_TDL"])
}

func TestDashboardStatsOverHTTP(t *testing.T) {
	router := newTestRouter(t)

	w := perform(router, http.MethodGet, "/api/dashboard/stats", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := dataMap(t, decodeEnvelope(t, w))
	declarations, ok := data["declarations"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, float64(4), declarations["total"])
}
