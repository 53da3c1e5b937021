package classify

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	log "github.com/sirupsen/logrus"

	"medassist/internal/agent"
)

type Handler struct {
	svc Service
}

func NewHandler(svc Service) *Handler {
	return &Handler{svc: svc}
}

type textRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

func (r textRequest) utterance() Utterance {
	return Utterance{Text: r.Text, Language: r.Language, Source: SourceTyped}
}

func (h *Handler) HandleClassify(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	respondJSON(w, http.StatusOK, h.svc.ClassifyIntent(r.Context(), req.utterance()))
}

func (h *Handler) HandleNavigate(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	result, err := h.svc.Navigate(r.Context(), req.utterance())
	if err != nil {
		log.WithError(err).Error("navigation flow failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleChatbot(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	result, err := h.svc.Chat(r.Context(), req.utterance())
	if err != nil {
		log.WithError(err).Error("chatbot flow failed")
		status := http.StatusInternalServerError
		if errors.Is(err, agent.ErrMissingAPIKey) {
			status = http.StatusBadRequest
		}
		respondError(w, status, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (h *Handler) HandleProcessVoice(w http.ResponseWriter, r *http.Request) {
	contentType := r.Header.Get("Content-Type")

	switch {
	case strings.Contains(contentType, "multipart/form-data"):
		// handled below
	case strings.Contains(contentType, "application/json"):
		respondError(w, http.StatusUnsupportedMediaType, "JSON data is not supported for this endpoint")
		return
	default:
		respondError(w, http.StatusUnsupportedMediaType,
			"unsupported media type: use multipart/form-data with a voice_input file")
		return
	}

	// Voice clips are short; 10MB is plenty.
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		respondError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	file, _, err := r.FormFile("voice_input")
	if err != nil {
		respondError(w, http.StatusBadRequest, "no audio file provided")
		return
	}
	defer file.Close()

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, file); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to read audio file")
		return
	}

	text, err := h.svc.Transcribe(r.Context(), buf.Bytes())
	if err != nil {
		if errors.Is(err, agent.ErrNotRecognized) {
			respondError(w, http.StatusBadRequest, "speech could not be recognized")
			return
		}
		log.WithError(err).Error("audio processing failed")
		respondError(w, http.StatusBadRequest, "error processing audio: "+err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"text": text})
}

type ttsRequest struct {
	Text     string `json:"text"`
	Language string `json:"language"`
}

func (h *Handler) HandleTTS(w http.ResponseWriter, r *http.Request) {
	var req ttsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	audio, err := h.svc.Synthesize(r.Context(), req.Text, req.Language)
	if err != nil {
		log.WithError(err).Error("speech synthesis failed")
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"audio_base64": base64.StdEncoding.EncodeToString(audio),
	})
}

func RegisterRoutes(r chi.Router, h *Handler) {
	r.Post("/classify", h.HandleClassify)
	r.Post("/navigate", h.HandleNavigate)
	r.Post("/chatbot", h.HandleChatbot)
	r.Post("/process-voice", h.HandleProcessVoice)
	r.Post("/tts", h.HandleTTS)
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("failed to encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}
