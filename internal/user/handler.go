package user

import (
	"errors"
	"fmt"
	"mime/multipart"
	"strings"

	"github.com/gofiber/fiber/v2"

	"user-hub-backend/internal/upload"
)

type Handler struct {
	service *Service
	uploads *upload.Saver
}

// userRequest carries the text fields of both create and update bodies.
// Clients may send them as JSON or as multipart form fields.
type userRequest struct {
	FirstName string `json:"firstName" form:"firstName"`
	LastName  string `json:"lastName" form:"lastName"`
	Email     string `json:"email" form:"email"`
	Password  string `json:"password" form:"password"`
}

func NewHandler(service *Service, uploads *upload.Saver) *Handler {
	return &Handler{service: service, uploads: uploads}
}

func (h *Handler) RegisterRoutes(app *fiber.App) {
	app.Post("/create", h.createUser)
	app.Get("/", h.getUsers)
	app.Get("/user/:id", h.getUser)
	app.Patch("/users/:id", h.updateUser)
	app.Delete("/users/:id", h.deleteUser)
}

func (h *Handler) createUser(c *fiber.Ctx) error {
	payload, err := parseUserRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	avatarURL := ""
	if file := avatarFile(c); file != nil {
		name, err := h.uploads.Save(file)
		if err != nil {
			return h.uploadError(c, err)
		}
		avatarURL = h.uploads.URL(c.BaseURL(), name)
	}

	created, err := h.service.Create(c.UserContext(), User{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Password:  payload.Password,
		Avatar:    avatarURL,
	})
	if err != nil {
		// a saved avatar file is left behind here; nothing references it
		if errors.Is(err, ErrEmailExists) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Email already registered"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}

	return c.Status(fiber.StatusCreated).JSON(created)
}

func (h *Handler) getUsers(c *fiber.Ctx) error {
	users, err := h.service.List(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
	return c.JSON(users)
}

func (h *Handler) getUser(c *fiber.Ctx) error {
	user, err := h.service.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.lookupError(c, err)
	}
	return c.JSON(user)
}

func (h *Handler) updateUser(c *fiber.Ctx) error {
	payload, err := parseUserRequest(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": err.Error()})
	}

	// every text field is overwritten with whatever was sent, empty
	// included; only the avatar survives an update without a new file
	update := Update{
		FirstName: payload.FirstName,
		LastName:  payload.LastName,
		Email:     payload.Email,
		Password:  payload.Password,
	}

	if file := avatarFile(c); file != nil {
		name, err := h.uploads.Save(file)
		if err != nil {
			return h.uploadError(c, err)
		}
		url := h.uploads.URL(c.BaseURL(), name)
		update.Avatar = &url
	}

	updated, err := h.service.Update(c.UserContext(), c.Params("id"), update)
	if err != nil {
		return h.lookupError(c, err)
	}
	return c.JSON(updated)
}

func (h *Handler) deleteUser(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.service.Delete(c.UserContext(), id); err != nil {
		return h.lookupError(c, err)
	}
	return c.JSON(fiber.Map{"message": fmt.Sprintf("User with id %s has been deleted successfully", id)})
}

func (h *Handler) lookupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"message": "User not found"})
	case errors.Is(err, ErrInvalidID):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Invalid user id"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
	}
}

func (h *Handler) uploadError(c *fiber.Ctx, err error) error {
	if errors.Is(err, upload.ErrUnsupportedFileType) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Only image files are allowed"})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Server Error"})
}

// parseUserRequest reads the text fields from either a multipart form or
// a JSON body. Detect multipart via header prefix rather than c.Is which
// can misbehave.
func parseUserRequest(c *fiber.Ctx) (userRequest, error) {
	if strings.HasPrefix(c.Get("Content-Type"), "multipart/form-data") {
		c.MultipartForm() // ignore error, FormValue works after parsing
		return userRequest{
			FirstName: c.FormValue("firstName"),
			LastName:  c.FormValue("lastName"),
			Email:     c.FormValue("email"),
			Password:  c.FormValue("password"),
		}, nil
	}

	payload := userRequest{}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&payload); err != nil {
			return userRequest{}, err
		}
	}
	return payload, nil
}

// avatarFile returns the uploaded avatar, or nil when the request did not
// carry one. An absent file is a legal input.
func avatarFile(c *fiber.Ctx) *multipart.FileHeader {
	file, err := c.FormFile("avatar")
	if err != nil || file == nil {
		return nil
	}
	return file
}
