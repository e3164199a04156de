package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"pitchdeck/internal/asset"
	"pitchdeck/internal/deck"
	"pitchdeck/internal/storage"
	"pitchdeck/pkg/zip"
)

type assetView struct {
	Phase       string `json:"phase"`
	MIMEType    string `json:"mime,omitempty"`
	Width       int    `json:"width,omitempty"`
	Height      int    `json:"height,omitempty"`
	Kind        string `json:"failure_kind,omitempty"`
	Description string `json:"description,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
}

type slideView struct {
	Index int `json:"index"`
	deck.Slide
	Active bool      `json:"active"`
	Asset  assetView `json:"asset"`
}

func newAssetView(idx int, s asset.State) assetView {
	v := assetView{Phase: s.Phase.String()}
	switch s.Phase {
	case asset.PhaseLoaded:
		if s.Image != nil {
			v.MIMEType = s.Image.MIMEType
			v.Width = s.Image.Width
			v.Height = s.Image.Height
		}
		v.ImageURL = fmt.Sprintf("/v1/slides/%d/image", idx)
	case asset.PhaseFailed:
		v.Kind = string(s.Kind)
		v.Description = s.Description
	}
	return v
}

func (a *App) view(idx, active int) (slideView, error) {
	slide, err := a.Deck.Slide(idx)
	if err != nil {
		return slideView{}, err
	}
	state, err := a.Deck.State(idx)
	if err != nil {
		return slideView{}, err
	}
	return slideView{Index: idx, Slide: slide, Active: idx == active, Asset: newAssetView(idx, state)}, nil
}

// ListSlides returns every slide with its background state.
func (a *App) ListSlides(w http.ResponseWriter, r *http.Request) {
	active := a.Deck.Active()
	items := make([]slideView, 0, a.Deck.Len())
	for i := 0; i < a.Deck.Len(); i++ {
		v, err := a.view(i, active)
		if err != nil {
			a.deckError(w, r, err)
			return
		}
		items = append(items, v)
	}
	a.json(w, http.StatusOK, map[string]any{"items": items, "active": active})
}

func (a *App) GetSlide(w http.ResponseWriter, r *http.Request) {
	idx, ok := a.slideIndex(w, r)
	if !ok {
		return
	}
	a.respondSlide(w, r, http.StatusOK, idx)
}

func (a *App) ActiveSlide(w http.ResponseWriter, r *http.Request) {
	a.respondSlide(w, r, http.StatusOK, a.Deck.Active())
}

type showRequest struct {
	Index *int `json:"index"`
}

// ShowSlide makes the requested slide the presented one.
func (a *App) ShowSlide(w http.ResponseWriter, r *http.Request) {
	var req showRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Index == nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if err := a.Deck.Show(*req.Index); err != nil {
		a.deckError(w, r, err)
		return
	}
	a.respondSlide(w, r, http.StatusOK, *req.Index)
}

func (a *App) NextSlide(w http.ResponseWriter, r *http.Request) {
	idx, err := a.Deck.Next()
	if err != nil {
		a.deckError(w, r, err)
		return
	}
	a.respondSlide(w, r, http.StatusOK, idx)
}

func (a *App) PrevSlide(w http.ResponseWriter, r *http.Request) {
	idx, err := a.Deck.Prev()
	if err != nil {
		a.deckError(w, r, err)
		return
	}
	a.respondSlide(w, r, http.StatusOK, idx)
}

// RetrySlide re-attempts a failed background. Only Failed slides restart.
func (a *App) RetrySlide(w http.ResponseWriter, r *http.Request) {
	idx, ok := a.slideIndex(w, r)
	if !ok {
		return
	}
	started, err := a.Deck.Retry(idx)
	if err != nil {
		a.deckError(w, r, err)
		return
	}
	if !started {
		state, _ := a.Deck.State(idx)
		a.error(w, http.StatusConflict, "conflict", fmt.Sprintf("slide background is %s, not failed", state.Phase))
		return
	}
	a.respondSlide(w, r, http.StatusAccepted, idx)
}

// SlideImage serves the decoded background bytes once loaded.
func (a *App) SlideImage(w http.ResponseWriter, r *http.Request) {
	idx, ok := a.slideIndex(w, r)
	if !ok {
		return
	}
	state, err := a.Deck.State(idx)
	if err != nil {
		a.deckError(w, r, err)
		return
	}
	switch state.Phase {
	case asset.PhaseLoaded:
		w.Header().Set("Content-Type", state.Image.MIMEType)
		w.Header().Set("Content-Length", strconv.Itoa(len(state.Image.Data)))
		w.Header().Set("Cache-Control", "private, max-age=3600")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(state.Image.Data)
	case asset.PhaseFailed:
		a.json(w, http.StatusBadGateway, errorBody{Error: errorDetail{
			Code:    string(state.Kind),
			Message: state.Description,
		}})
	default:
		w.Header().Set("Retry-After", "1")
		a.json(w, http.StatusAccepted, map[string]any{"index": idx, "phase": state.Phase.String()})
	}
}

func (a *App) respondSlide(w http.ResponseWriter, r *http.Request, code, idx int) {
	v, err := a.view(idx, a.Deck.Active())
	if err != nil {
		a.deckError(w, r, err)
		return
	}
	a.json(w, code, v)
}

// Archive bundles every loaded background into a zip named after slide ids.
// Slides that are not loaded are skipped and listed in X-Skipped-Slides.
func (a *App) Archive(w http.ResponseWriter, r *http.Request) {
	var (
		assets  []zip.Asset
		skipped []string
	)
	for i := 0; i < a.Deck.Len(); i++ {
		slide, err := a.Deck.Slide(i)
		if err != nil {
			a.deckError(w, r, err)
			return
		}
		state, err := a.Deck.State(i)
		if err != nil {
			a.deckError(w, r, err)
			return
		}
		if state.Phase != asset.PhaseLoaded || state.Image == nil {
			skipped = append(skipped, slide.ID)
			continue
		}
		assets = append(assets, zip.Asset{
			Filename: storage.SlideKey(slide.ID, state.Image.MIMEType),
			Data:     state.Image.Data,
		})
	}
	if len(assets) == 0 {
		a.error(w, http.StatusConflict, "conflict", "no slide backgrounds are loaded yet")
		return
	}

	data, err := zip.ArchiveAssets(assets, time.Now())
	if err != nil {
		a.log(r).Error().Err(err).Msg("archive backgrounds failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to build archive")
		return
	}
	if len(skipped) > 0 {
		w.Header().Set("X-Skipped-Slides", strings.Join(skipped, ","))
	}
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", `attachment; filename="backgrounds.zip"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(data)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}
