package classify

import (
	"bytes"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"medassist/internal/agent"
)

func newTestRouter(f *serviceFixture) http.Handler {
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(f.svc))
	return r
}

func TestHandleClassify_HealthQueryScenario(t *testing.T) {
	router := newTestRouter(newServiceFixture())

	req := httptest.NewRequest(http.MethodPost, "/classify",
		strings.NewReader(`{"text": "I have fever and cold"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"category": "health_query", "text": "I have fever and cold", "lang": "en"}`,
		rec.Body.String())
}

func TestHandleClassify_UnknownScenario(t *testing.T) {
	router := newTestRouter(newServiceFixture())

	req := httptest.NewRequest(http.MethodPost, "/classify",
		strings.NewReader(`{"text": "what time is it"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"category": "unknown", "text": "what time is it", "lang": "en"}`,
		rec.Body.String())
}

func TestHandleClassify_MissingText(t *testing.T) {
	router := newTestRouter(newServiceFixture())

	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "text is required")
}

func TestHandleNavigate_MedibotBody(t *testing.T) {
	f := newServiceFixture()
	f.pagesLLM.reply = "medibot"
	f.chatLLM.reply = "How long have you felt this way?"
	router := newTestRouter(f)

	req := httptest.NewRequest(http.MethodPost, "/navigate",
		strings.NewReader(`{"text": "I feel sick"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t,
		`{"category": "medibot", "text_response": "How long have you felt this way?"}`,
		rec.Body.String())
}

func TestHandleNavigate_NonMedibotOmitsTextResponse(t *testing.T) {
	f := newServiceFixture()
	f.pagesLLM.reply = "user_profile"
	router := newTestRouter(f)

	req := httptest.NewRequest(http.MethodPost, "/navigate",
		strings.NewReader(`{"text": "change my name"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"category": "user_profile"}`, rec.Body.String())
}

func TestHandleNavigate_ClassifierFailureIs500(t *testing.T) {
	f := newServiceFixture()
	f.pagesLLM.err = agent.ErrMissingAPIKey
	router := newTestRouter(f)

	req := httptest.NewRequest(http.MethodPost, "/navigate",
		strings.NewReader(`{"text": "anything"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "error")
}

func TestHandleChatbot_NoPartialSuccess(t *testing.T) {
	f := newServiceFixture()
	f.specLLM.err = assertionError("spec down")
	f.remedyLLM.reply = "Drink water."
	router := newTestRouter(f)

	req := httptest.NewRequest(http.MethodPost, "/chatbot",
		strings.NewReader(`{"text": "my chest hurts"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "specialization classification failed")
	assert.NotContains(t, rec.Body.String(), "Drink water.")
}

func TestHandleProcessVoice_JSONIs415(t *testing.T) {
	router := newTestRouter(newServiceFixture())

	req := httptest.NewRequest(http.MethodPost, "/process-voice",
		strings.NewReader(`{"text": "hello"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
}

func TestHandleProcessVoice_MissingFileIs400(t *testing.T) {
	router := newTestRouter(newServiceFixture())

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	require.NoError(t, writer.WriteField("note", "no file here"))
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/process-voice", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "no audio file provided")
}

func TestHandleProcessVoice_Transcribes(t *testing.T) {
	f := newServiceFixture()
	router := newTestRouterWithTranscriber(f, &fakeTranscriber{text: "I have fever"})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("voice_input", "clip.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-wav-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/process-voice", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"text": "I have fever"}`, rec.Body.String())
}

func TestHandleProcessVoice_NotRecognizedIs400(t *testing.T) {
	f := newServiceFixture()
	router := newTestRouterWithTranscriber(f, &fakeTranscriber{err: agent.ErrNotRecognized})

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("voice_input", "clip.wav")
	require.NoError(t, err)
	_, err = part.Write([]byte("static"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/process-voice", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "speech could not be recognized")
}

func TestHandleTTS_ReturnsBase64Audio(t *testing.T) {
	f := newServiceFixture()
	router := newTestRouterWithSynthesizer(f, &fakeSynthesizer{audio: []byte("mp3-bytes")})

	req := httptest.NewRequest(http.MethodPost, "/tts",
		strings.NewReader(`{"text": "take rest", "language": "en"}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	// "mp3-bytes" base64-encoded
	assert.JSONEq(t, `{"audio_base64": "bXAzLWJ5dGVz"}`, rec.Body.String())
}

func newTestRouterWithTranscriber(f *serviceFixture, stt agent.TranscriptionClient) http.Handler {
	svc := NewService(
		NewDetector(),
		NewKeywordClassifier(),
		NewPageClassifier(f.pagesLLM),
		NewSpecializationClassifier(f.specLLM),
		NewRemedyGenerator(f.remedyLLM),
		f.chatLLM,
		stt,
		&fakeSynthesizer{},
		f.directory,
	)
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(svc))
	return r
}

func newTestRouterWithSynthesizer(f *serviceFixture, tts agent.TTSClient) http.Handler {
	svc := NewService(
		NewDetector(),
		NewKeywordClassifier(),
		NewPageClassifier(f.pagesLLM),
		NewSpecializationClassifier(f.specLLM),
		NewRemedyGenerator(f.remedyLLM),
		f.chatLLM,
		&fakeTranscriber{},
		tts,
		f.directory,
	)
	r := chi.NewRouter()
	RegisterRoutes(r, NewHandler(svc))
	return r
}

type assertionError string

func (e assertionError) Error() string { return string(e) }
