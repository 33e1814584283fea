package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.RealIP)
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(withMetrics)
	router.Use(withGZip)

	router.Method(http.MethodGet, "/metrics", promhttp.Handler())
	router.Get("/healthz", h.healthz)
	router.Get("/api/version", h.getServerVersion)

	if h.uploadsDir != "" {
		router.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(h.uploadsDir))))
	}

	// chat replies stream for as long as the generator needs
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/chat", h.chat)
	})

	router.Group(func(r chi.Router) {
		r.Use(h.withTimeout)

		// public routes without authorization
		r.Get("/api/membership/plans", h.listPlans)
		r.Get("/api/destinations", h.listDestinations)
		r.Get("/api/destinations/{id}", h.getDestination)

		// public routes throttled per client IP
		r.Group(func(r chi.Router) {
			r.Use(h.throttle)
			r.Post("/api/auth/register", h.register)
			r.Post("/api/auth/login", h.login)
			r.Post("/api/auth/member-login", h.memberLogin)
			r.Post("/api/auth/set-password", h.setMemberPassword)
			r.Post("/api/auth/forgot-password", h.forgotPassword)
			r.Post("/api/auth/reset-password", h.resetPassword)
			r.Post("/api/auth/google", h.googleSignIn)
			r.Post("/api/membership/enroll", h.enroll)
		})

		// member routes
		r.Group(func(r chi.Router) {
			r.Use(h.auth)

			r.Get("/api/membership", h.getMembership)
			r.Post("/api/membership/choose-plan", h.choosePlan)
			r.Post("/api/membership/cancel", h.cancelMembership)
			r.Post("/api/membership/payment-done", h.paymentDone)

			r.Get("/api/user/profile", h.getProfile)
			r.Put("/api/user/profile", h.updateProfile)
			r.Put("/api/user/fcm-token", h.updateFCMToken)
			r.Post("/api/user/profile/request-change", h.requestProfileChange)
			r.Post("/api/user/profile/verify-change", h.verifyProfileChange)
			r.Post("/api/user/password/request-change", h.requestPasswordChange)
			r.Post("/api/user/password/verify-change", h.verifyPasswordChange)

			r.Get("/api/chat/history", h.chatHistory)
			r.Delete("/api/chat/history", h.clearChatHistory)
		})

		// operator reads
		r.Group(func(r chi.Router) {
			r.Use(h.auth, h.supportOnly)

			r.Get("/api/admin/stats", h.adminStats)
			r.Get("/api/admin/users", h.adminListUsers)
			r.Get("/api/admin/memberships", h.adminListMemberships)
			r.Get("/api/admin/plans", h.adminListPlans)
			r.Get("/api/admin/destinations", h.listDestinations)
			r.Get("/api/brochures", h.listBrochures)
			r.Post("/api/upload", h.upload)
		})

		// operator mutations
		r.Group(func(r chi.Router) {
			r.Use(h.auth, h.opsOnly)

			r.Post("/api/admin/memberships/{id}/activate", h.activateMembership)
			r.Post("/api/admin/memberships/{id}/reject", h.rejectMembership)
			r.Post("/api/admin/memberships/{id}/extend", h.extendMembership)
			r.Post("/api/admin/memberships/{id}/usage", h.recordUsage)
			r.Put("/api/admin/memberships/{id}", h.overrideMembership)
			r.Put("/api/admin/plans/{id}", h.updatePlan)
			r.Post("/api/admin/destinations", h.createDestination)
			r.Put("/api/admin/destinations/{id}", h.updateDestination)
			r.Delete("/api/admin/destinations/{id}", h.deleteDestination)
			r.Post("/api/brochures", h.createBrochure)
			r.Delete("/api/brochures/{id}", h.deleteBrochure)
		})
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}

// withTimeout cancels the request context after requestTimeout.
func (h *Handler) withTimeout(next http.Handler) http.Handler {
	if h.requestTimeout <= 0 {
		return next
	}
	return middleware.Timeout(h.requestTimeout)(next)
}
