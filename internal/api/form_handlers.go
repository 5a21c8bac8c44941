package api

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/kdimtricp/acholiflixx/internal/agent"
	"github.com/kdimtricp/acholiflixx/internal/checkout"
	"github.com/kdimtricp/acholiflixx/internal/forms"
	"github.com/kdimtricp/acholiflixx/internal/ingest"
)

type subscribeData struct {
	Page
	Checkout checkout.View
	Plans    []checkout.Plan
	Methods  []checkout.PaymentOption
	Errors   forms.ValidationErrors
	Message  string
	Receipt  *checkout.Receipt
}

func (app *App) renderSubscribe(w http.ResponseWriter, status int, data subscribeData) {
	data.Page = Page{Title: "Subscribe - Acholiflixx", Nav: "subscribe"}
	data.Plans = checkout.Plans
	data.Methods = checkout.PaymentOptions
	app.renderPage(w, status, "subscribe.html", data)
}

// SubscribePageHandler starts a checkout. ?plan= preselects a plan.
func (app *App) SubscribePageHandler(w http.ResponseWriter, r *http.Request) {
	session := app.Checkout.Start()
	if plan := r.URL.Query().Get("plan"); plan != "" {
		if err := session.SelectPlan(plan); err != nil {
			app.logger().Debug("ignoring preselected plan", "plan", plan, "error", err)
		}
	}
	app.renderSubscribe(w, http.StatusOK, subscribeData{Checkout: session.View()})
}

// SubscribeHandler applies one checkout action: select-plan, select-method,
// continue, back or pay.
func (app *App) SubscribeHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.renderError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	session := app.Checkout.Resume(r.PostFormValue("session"))

	var err error
	switch action := r.PostFormValue("action"); action {
	case "select-plan":
		err = session.SelectPlan(r.PostFormValue("plan"))
	case "select-method":
		err = session.SelectMethod(checkout.PaymentMethod(r.PostFormValue("method")))
	case "continue":
		err = app.continueCheckout(session, r)
	case "back":
		err = session.Back()
	case "pay":
		details := checkout.Details{
			Phone:      strings.TrimSpace(r.PostFormValue("phone")),
			CardNumber: strings.TrimSpace(r.PostFormValue("card_number")),
			CardExpiry: strings.TrimSpace(r.PostFormValue("card_expiry")),
			CardCVC:    strings.TrimSpace(r.PostFormValue("card_cvc")),
			Email:      strings.TrimSpace(r.PostFormValue("email")),
		}
		receipt, payErr := app.Checkout.Submit(r.Context(), session, details)
		if payErr == nil {
			app.renderSubscribe(w, http.StatusOK, subscribeData{Checkout: session.View(), Receipt: &receipt})
			return
		}
		err = payErr
	default:
		err = fmt.Errorf("unknown action %q", action)
	}

	if err != nil {
		status, data := app.checkoutFailure(err)
		data.Checkout = session.View()
		app.renderSubscribe(w, status, data)
		return
	}
	app.renderSubscribe(w, http.StatusOK, subscribeData{Checkout: session.View()})
}

// continueCheckout applies a selection submitted with the Continue button
// before advancing.
func (app *App) continueCheckout(session *checkout.Session, r *http.Request) error {
	view := session.View()
	switch view.Step {
	case checkout.StepPlan:
		if plan := r.PostFormValue("plan"); plan != "" {
			if err := session.SelectPlan(plan); err != nil {
				return err
			}
		}
	case checkout.StepPayment:
		if method := r.PostFormValue("method"); method != "" {
			if err := session.SelectMethod(checkout.PaymentMethod(method)); err != nil {
				return err
			}
		}
	}
	return app.Checkout.Continue(session)
}

func (app *App) checkoutFailure(err error) (int, subscribeData) {
	var verrs forms.ValidationErrors
	switch {
	case errors.As(err, &verrs):
		return http.StatusBadRequest, subscribeData{Errors: verrs}
	case errors.Is(err, checkout.ErrNoPlan):
		return http.StatusBadRequest, subscribeData{Message: "Please choose a plan to continue."}
	case errors.Is(err, checkout.ErrNoPaymentMethod):
		return http.StatusBadRequest, subscribeData{Message: "Please choose a payment method to continue."}
	case errors.Is(err, checkout.ErrUnknownPlan), errors.Is(err, checkout.ErrUnknownMethod):
		return http.StatusBadRequest, subscribeData{Message: "That option is not available."}
	case errors.Is(err, checkout.ErrProcessing), errors.Is(err, checkout.ErrAlreadyCompleted), errors.Is(err, checkout.ErrWrongStep):
		return http.StatusConflict, subscribeData{Message: "This checkout cannot do that right now."}
	default:
		app.logger().Error("checkout failed", "error", err)
		return http.StatusBadRequest, subscribeData{Message: "Payment could not be completed. Please try again."}
	}
}

type agentData struct {
	Page
	Benefits   []agent.Benefit
	HowItWorks []agent.Step
	Form       agent.Application
	Errors     forms.ValidationErrors
	Success    string
}

func (app *App) renderAgent(w http.ResponseWriter, status int, data agentData) {
	data.Page = Page{Title: "Become an Agent - Acholiflixx", Nav: "agent"}
	data.Benefits = agent.Benefits
	data.HowItWorks = agent.HowItWorks
	app.renderPage(w, status, "agent.html", data)
}

func (app *App) AgentPageHandler(w http.ResponseWriter, r *http.Request) {
	app.renderAgent(w, http.StatusOK, agentData{})
}

func (app *App) AgentHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		app.renderError(w, http.StatusBadRequest, "Invalid form")
		return
	}

	form := agent.Application{
		FullName:   strings.TrimSpace(r.PostFormValue("full_name")),
		Email:      strings.TrimSpace(r.PostFormValue("email")),
		Phone:      strings.TrimSpace(r.PostFormValue("phone")),
		District:   strings.TrimSpace(r.PostFormValue("district")),
		Location:   strings.TrimSpace(r.PostFormValue("location")),
		Experience: strings.TrimSpace(r.PostFormValue("experience")),
		Motivation: strings.TrimSpace(r.PostFormValue("motivation")),
	}

	if _, err := app.Agents.Submit(r.Context(), form); err != nil {
		var verrs forms.ValidationErrors
		if errors.As(err, &verrs) {
			app.renderAgent(w, http.StatusBadRequest, agentData{Form: form, Errors: verrs})
			return
		}
		app.logger().Error("agent registration failed", "error", err)
		app.renderAgent(w, http.StatusBadGateway, agentData{Form: form, Errors: forms.ValidationErrors{"form": "We could not submit your application. Please try again."}})
		return
	}

	success := fmt.Sprintf("Thank you, %s! Your agent application has been received. Our team will contact you within 24-48 hours at %s.", form.FullName, form.Phone)
	app.renderAgent(w, http.StatusOK, agentData{Success: success})
}

type uploadData struct {
	Page
	Categories []string
	Ratings    []string
	Languages  []string
	Subtitles  []string
	Form       ingest.Submission
	Errors     forms.ValidationErrors
	Success    string
}

func (app *App) renderUpload(w http.ResponseWriter, status int, data uploadData) {
	data.Page = Page{Title: "Upload Content - Acholiflixx Admin", Nav: "admin"}
	data.Categories = ingest.Categories
	data.Ratings = ingest.Ratings
	data.Languages = ingest.Languages
	data.Subtitles = ingest.SubtitleOptions
	app.renderPage(w, status, "admin_upload.html", data)
}

func (app *App) UploadPageHandler(w http.ResponseWriter, r *http.Request) {
	app.renderUpload(w, http.StatusOK, uploadData{})
}

// UploadHandler stages the submitted content for ingestion. Nothing is kept
// once the ingestor returns, and a successful submit clears the form.
func (app *App) UploadHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, app.MaxUploadSize)

	if err := r.ParseMultipartForm(32 << 20); err != nil {
		app.renderUpload(w, http.StatusBadRequest, uploadData{Errors: forms.ValidationErrors{"form": "Upload too large or malformed"}})
		return
	}
	defer r.MultipartForm.RemoveAll()

	sub := ingest.Submission{
		Title:       strings.TrimSpace(r.FormValue("title")),
		Description: strings.TrimSpace(r.FormValue("description")),
		Category:    r.FormValue("category"),
		Year:        strings.TrimSpace(r.FormValue("year")),
		Duration:    strings.TrimSpace(r.FormValue("duration")),
		Rating:      r.FormValue("rating"),
		Director:    strings.TrimSpace(r.FormValue("director")),
		Language:    r.FormValue("language"),
		Cast:        ingest.ParseCast(r.MultipartForm.Value["cast"]),
		Subtitles:   r.MultipartForm.Value["subtitles"],
	}

	var err error
	if sub.Thumbnail, err = attachment(r, "thumbnail"); err != nil {
		app.renderUpload(w, http.StatusBadRequest, uploadData{Form: sub, Errors: forms.ValidationErrors{"thumbnail": "Could not read thumbnail"}})
		return
	}
	defer closeAttachment(sub.Thumbnail)
	if sub.Video, err = attachment(r, "video"); err != nil {
		app.renderUpload(w, http.StatusBadRequest, uploadData{Form: sub, Errors: forms.ValidationErrors{"video": "Could not read video"}})
		return
	}
	defer closeAttachment(sub.Video)

	result, err := app.Uploads.Submit(r.Context(), sub)
	if err != nil {
		var verrs forms.ValidationErrors
		if errors.As(err, &verrs) {
			app.renderUpload(w, http.StatusBadRequest, uploadData{Form: sub, Errors: verrs})
			return
		}
		app.logger().Error("upload failed", "title", sub.Title, "error", err)
		app.renderUpload(w, http.StatusInternalServerError, uploadData{Form: sub, Errors: forms.ValidationErrors{"form": "Upload failed. Please try again."}})
		return
	}

	success := fmt.Sprintf("%q uploaded successfully!", result.Title)
	if result.VideoSize != "" {
		success = fmt.Sprintf("%q uploaded successfully! (%s)", result.Title, result.VideoSize)
	}
	w.Header().Set("HX-Trigger", "contentUploaded")
	app.renderUpload(w, http.StatusOK, uploadData{Success: success})
}

// attachment returns the uploaded file for field, or nil when none was sent.
func attachment(r *http.Request, field string) (*ingest.Attachment, error) {
	file, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	if header.Size == 0 && header.Filename == "" {
		file.Close()
		return nil, nil
	}
	return &ingest.Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Size:        header.Size,
		Body:        file,
	}, nil
}

func closeAttachment(att *ingest.Attachment) {
	if att == nil {
		return
	}
	if c, ok := att.Body.(io.Closer); ok {
		c.Close()
	}
}
