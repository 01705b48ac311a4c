package handler

import (
	"net/http"

	attendancedomain "amparo-go/internal/domain/attendance"
	authdomain "amparo-go/internal/domain/auth"
	basketdomain "amparo-go/internal/domain/basket"
	classgroupdomain "amparo-go/internal/domain/classgroup"
	familydomain "amparo-go/internal/domain/family"
	memberdomain "amparo-go/internal/domain/member"
	reportdomain "amparo-go/internal/domain/report"
	"amparo-go/pkg/logger"
	"github.com/go-playground/validator/v10"
)

type Handlers struct {
	log      logger.Logger
	validate *validator.Validate

	auth        *authdomain.Service
	families    *familydomain.Service
	members     *memberdomain.Service
	classGroups *classgroupdomain.Service
	attendance  *attendancedomain.Service
	baskets     *basketdomain.Service
	reports     *reportdomain.Service
}

func New(
	log logger.Logger,
	auth *authdomain.Service,
	families *familydomain.Service,
	members *memberdomain.Service,
	classGroups *classgroupdomain.Service,
	attendance *attendancedomain.Service,
	baskets *basketdomain.Service,
	reports *reportdomain.Service,
) *Handlers {
	return &Handlers{
		log:         log,
		validate:    newValidator(),
		auth:        auth,
		families:    families,
		members:     members,
		classGroups: classGroups,
		attendance:  attendance,
		baskets:     baskets,
		reports:     reports,
	}
}

func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"status_code": http.StatusOK,
		"status":      "ok",
	})
}
