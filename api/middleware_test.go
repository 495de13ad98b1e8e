package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"munidesk/munidesk_go_module_builder_service/config"
	"munidesk/munidesk_go_module_builder_service/pkg/helper"
	"munidesk/munidesk_go_module_builder_service/pkg/logger"
)

func testRouter() (*gin.Engine, *Handler) {
	gin.SetMode(gin.TestMode)

	h := NewHandler(
		config.Config{DefaultTenantId: "default-tenant"},
		logger.NewLogger("test", logger.LevelError),
		nil,
	)

	return gin.New(), h
}

func TestIdentityDefaultsTenant(t *testing.T) {
	router, h := testRouter()

	var seenTenant string
	router.GET("/probe", h.Identity(), func(c *gin.Context) {
		seenTenant = c.GetString(ctxTenantId)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/probe", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "default-tenant", seenTenant)

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.Header.Set(tenantHeader, "prefeitura-sul")
	router.ServeHTTP(w, req)

	assert.Equal(t, "prefeitura-sul", seenTenant)
}

func TestRequireCapability(t *testing.T) {
	router, h := testRouter()

	router.POST("/guarded", h.Identity(), h.RequireCapability(helper.CapApproveRecords), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	cases := []struct {
		role     string
		expected int
	}{
		{config.RoleAdministrador, http.StatusOK},
		{config.RoleSupervisor, http.StatusOK},
		{config.RoleFuncionario, http.StatusForbidden},
		{config.RoleConsulta, http.StatusForbidden},
		{"", http.StatusForbidden},
	}

	for _, tc := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/guarded", nil)
		if tc.role != "" {
			req.Header.Set(roleHeader, tc.role)
		}
		router.ServeHTTP(w, req)

		assert.Equal(t, tc.expected, w.Code, "role %q", tc.role)
	}
}
