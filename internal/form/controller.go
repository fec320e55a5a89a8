// Package form implements the admin product form state machine: creation
// vs. editing of a single record, draft validation, and image-source
// reconciliation. It models the admin client's form session — the state an
// admin UI holds between opening a form and submitting it — not the server
// request path in adminapi, which binds and validates per request. All
// persistence goes through store.ProductStore; the controller itself
// performs no I/O beyond that boundary.
package form

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/asaskevich/EventBus"
	"go.uber.org/zap"

	"github.com/chamberedinseams/storefront/internal/domain"
	"github.com/chamberedinseams/storefront/internal/store"
)

// TopicCatalogRefresh is published after every successful mutation so the
// surrounding shell can re-fetch the catalog.
const TopicCatalogRefresh = "catalog.refresh"

// State enumerates the form's view states.
type State int

const (
	StateClosed State = iota
	StateAdding
	StateEditing
)

func (s State) String() string {
	switch s {
	case StateAdding:
		return "adding"
	case StateEditing:
		return "editing"
	default:
		return "closed"
	}
}

// ValidationError reports a missing or invalid required field. It is
// resolved locally and never reaches the store.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid field %s: %s", e.Field, e.Reason)
}

// Draft mirrors the editable subset of a product plus transient image
// state. Price and category are kept as text until submit, the way the
// form inputs hold them.
type Draft struct {
	Title        string
	Description  string
	PriceText    string
	CategoryText string
	Image        ImageSource
	IsStaffPick  bool
	IsActive     bool
}

func blankDraft() Draft {
	return Draft{Image: NoImage(), IsActive: true}
}

// Controller manages the Closed/Adding/Editing transitions for the admin
// product form.
type Controller struct {
	products  store.ProductStore
	bus       EventBus.Bus
	state     State
	editingID int64
	draft     Draft
}

func NewController(products store.ProductStore, bus EventBus.Bus) *Controller {
	return &Controller{products: products, bus: bus, state: StateClosed}
}

func (c *Controller) State() State { return c.state }

// EditingID returns the product id under edit, zero otherwise.
func (c *Controller) EditingID() int64 {
	if c.state != StateEditing {
		return 0
	}
	return c.editingID
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() Draft { return c.draft }

// OpenAdd resets the draft to defaults and enters Adding.
func (c *Controller) OpenAdd() {
	c.state = StateAdding
	c.editingID = 0
	c.draft = blankDraft()
}

// OpenEdit populates the draft field-for-field from an existing product,
// including its image preview, and enters Editing. Valid from any state.
func (c *Controller) OpenEdit(p domain.Product) {
	c.state = StateEditing
	c.editingID = p.ID
	c.draft = Draft{
		Title:        p.Title,
		Description:  p.Description,
		PriceText:    strconv.FormatFloat(p.Price, 'f', -1, 64),
		CategoryText: strconv.FormatInt(p.CategoryID, 10),
		Image:        ImageFromProduct(p),
		IsStaffPick:  p.IsStaffPick,
		IsActive:     p.IsActive,
	}
}

// Cancel discards the draft and returns to Closed.
func (c *Controller) Cancel() {
	c.state = StateClosed
	c.editingID = 0
	c.draft = blankDraft()
}

func (c *Controller) SetTitle(v string)       { c.draft.Title = v }
func (c *Controller) SetDescription(v string) { c.draft.Description = v }
func (c *Controller) SetPrice(v string)       { c.draft.PriceText = v }
func (c *Controller) SetCategory(v string)    { c.draft.CategoryText = v }
func (c *Controller) SetStaffPick(v bool)     { c.draft.IsStaffPick = v }
func (c *Controller) SetActive(v bool)        { c.draft.IsActive = v }

// ChooseFile records an uploaded file as the image source. Choosing a file
// always clears any URL the draft held.
func (c *Controller) ChooseFile(handle string, preview string) {
	c.draft.Image = UploadedImage(handle, preview)
}

// SetImageURL records a URL image source, clearing any chosen file. An
// empty URL clears the image entirely.
func (c *Controller) SetImageURL(url string) {
	c.draft.Image = URLImage(strings.TrimSpace(url))
}

// validate checks required fields before any store call.
func (c *Controller) validate() (store.ProductPayload, *ValidationError) {
	var payload store.ProductPayload

	title := strings.TrimSpace(c.draft.Title)
	if title == "" {
		return payload, &ValidationError{Field: "title", Reason: "title is required"}
	}

	price, err := strconv.ParseFloat(strings.TrimSpace(c.draft.PriceText), 64)
	if err != nil {
		return payload, &ValidationError{Field: "price", Reason: "price must be a number"}
	}
	if price < 0 {
		return payload, &ValidationError{Field: "price", Reason: "price must not be negative"}
	}

	categoryID, err := strconv.ParseInt(strings.TrimSpace(c.draft.CategoryText), 10, 64)
	if err != nil || categoryID == 0 {
		return payload, &ValidationError{Field: "category", Reason: "category is required"}
	}

	imageURL, imageFile := c.draft.Image.Payload()
	active := c.draft.IsActive
	payload = store.ProductPayload{
		Title:       title,
		Description: c.draft.Description,
		Price:       price,
		CategoryID:  categoryID,
		ImageURL:    imageURL,
		ImageFile:   imageFile,
		IsStaffPick: c.draft.IsStaffPick,
		IsActive:    &active,
	}
	return payload, nil
}

// Submit validates the draft and issues a create (Adding) or update-by-id
// (Editing) to the store. Success closes the form and publishes a catalog
// refresh; failure keeps the state and draft so the operator loses nothing.
func (c *Controller) Submit(ctx context.Context) error {
	if c.state == StateClosed {
		return fmt.Errorf("no form open")
	}

	payload, verr := c.validate()
	if verr != nil {
		return verr
	}

	var err error
	var action string
	switch c.state {
	case StateAdding:
		_, err = c.products.CreateProduct(ctx, payload)
		action = "product.create"
	case StateEditing:
		_, err = c.products.UpdateProduct(ctx, c.editingID, payload)
		action = "product.update"
	}
	if err != nil {
		zap.L().Error("product submit failed",
			zap.String("state", c.state.String()),
			zap.Int64("id", c.editingID),
			zap.Error(err))
		return err
	}

	c.publishRefresh(action, payload.Title)
	c.Cancel()
	return nil
}

// Delete issues a delete-by-id after interactive confirmation. It is
// independent of the form state; declining the confirmation is a no-op.
func (c *Controller) Delete(ctx context.Context, id int64, confirm func() bool) error {
	if confirm != nil && !confirm() {
		return nil
	}
	if err := c.products.DeleteProduct(ctx, id); err != nil {
		zap.L().Error("product delete failed", zap.Int64("id", id), zap.Error(err))
		return err
	}
	c.publishRefresh("product.delete", strconv.FormatInt(id, 10))
	return nil
}

func (c *Controller) publishRefresh(action string, detail string) {
	if c.bus != nil {
		c.bus.Publish(TopicCatalogRefresh, action, detail)
	}
}
