package v1

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/groomly/pet-services/notifygateway/internal/constants"
	"github.com/groomly/pet-services/notifygateway/internal/model"
	"github.com/groomly/pet-services/notifygateway/internal/service"
	"go.uber.org/zap"
)

const reconciliationLimit = 100

type Handler struct {
	logger         *zap.Logger
	jobs           service.JobService
	reconciliation service.ReconciliationService
}

func NewHandler(logger *zap.Logger, jobs service.JobService,
	reconciliation service.ReconciliationService) *Handler {
	return &Handler{logger: logger, jobs: jobs, reconciliation: reconciliation}
}

func (h *Handler) Pong(c *fiber.Ctx) error {
	return c.SendString("pong")
}

func (h *Handler) CreateJob(c *fiber.Ctx) error {
	ctx := c.UserContext()

	var request CreateJobRequest
	if err := c.BodyParser(&request); err != nil {
		h.logger.Warn("Failed to parse body",
			zap.Error(err),
			zap.String("body", string(c.Body())))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	cmd := service.CreateJobCommand{
		TenantID:  request.TenantID,
		ClientRef: request.ClientRef,
		Channel:   model.Channel(request.Channel),
		Type:      model.JobType(request.Type),
		Recipient: request.Recipient,
		Body:      request.Body,
	}

	resp, err := h.jobs.CreateJob(ctx, cmd)
	if err != nil {
		h.logger.Error("Failed to create job",
			zap.Error(err),
			zap.String("tenantID", request.TenantID),
			zap.String("clientRef", request.ClientRef))

		return err
	}

	h.logger.Info("Job accepted",
		zap.Int64("jobID", resp.JobID),
		zap.String("tenantID", request.TenantID))

	return c.Status(fiber.StatusCreated).JSON(
		CreateJobResponse{Status: string(model.JobStatusScheduled), JobID: resp.JobID})
}

func (h *Handler) GetJob(c *fiber.Ctx) error {
	jobID, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	view, err := h.jobs.GetJob(jobID)
	if err != nil {
		return err
	}

	return c.JSON(view)
}

func (h *Handler) GetJobs(c *fiber.Ctx) error {
	tenantID := c.Query("tenant_id")
	if tenantID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"code":    constants.ErrCodeInvalidRequestBody,
			"message": constants.GetErrorMessage(constants.ErrCodeInvalidRequestBody),
		})
	}

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	resp, err := h.jobs.GetJobs(service.GetJobsQuery{TenantID: tenantID, Limit: limit, Offset: offset})
	if err != nil {
		return err
	}

	return c.JSON(resp)
}

func (h *Handler) Reconciliation(c *fiber.Ctx) error {
	jobs, err := h.reconciliation.FindUndebitedSent(reconciliationLimit)
	if err != nil {
		return err
	}

	return c.JSON(ReconciliationResponse{Jobs: jobs, Count: len(jobs)})
}
