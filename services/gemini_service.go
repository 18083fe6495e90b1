package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"

	config "github.com/vraj2305/cancer_scanner/configs"
	"github.com/vraj2305/cancer_scanner/models"
)

// systemPrompt keeps the assistant on cancer education topics and enforces
// the markdown conventions the frontend renders.
const systemPrompt = `You are a helpful, clear, and concise cancer information assistant.
Only answer questions about cancer: types, symptoms, diagnosis, treatments, screening and prevention.
Use **bold text** for important medical terms, put blank lines between topics,
format statistics like "the 5-year survival rate is **75%**", use bullet points for
symptom lists, and briefly define medical terms when first used.
Always remind users that you are not a substitute for professional medical advice.`

// offTopicReply is returned without calling the model when the keyword gate
// finds nothing cancer-related in the message.
const offTopicReply = "I'm specialized in cancer-related topics only. Please ask me questions about " +
	"cancer diagnosis, treatments, symptoms, or preventive measures. If you need general " +
	"medical advice, please consult with a healthcare professional."

var cancerKeywords = []string{
	"cancer", "tumor", "carcinoma", "oncology", "malignant", "benign", "metastasis", "biopsy",
	"chemotherapy", "radiation", "therapy", "treatment", "diagnosis", "prognosis", "screening",
	"mammogram", "ultrasound", "scan", "ct", "mri", "pet", "symptom", "lump", "lesion", "growth",
	"remission", "recurrence", "stage", "grade", "oncologist", "pathology", "risk", "breast",
	"lung", "colon", "prostate", "melanoma", "lymphoma", "leukemia", "surgery", "immunotherapy",
	"survival", "rate", "marker", "biomarker", "genetic", "mutation", "cell", "checkup", "examination",
	"skin", "kidney", "brain", "oral", "mole",
}

type GeminiService struct {
	Client  *http.Client
	APIKey  string
	Model   string
	BaseURL string
}

var Gemini *GeminiService

func InitGeminiService() {
	apiKey := config.Config("GOOGLE_API_KEY")
	if apiKey == "" {
		log.Println("⚠️ Chat assistant not configured. Missing GOOGLE_API_KEY.")
		Gemini = nil
		return
	}

	model := config.Config("GEMINI_MODEL")
	if model == "" {
		model = "gemini-1.5-pro"
	}

	Gemini = &GeminiService{
		Client:  &http.Client{Timeout: 60 * time.Second},
		APIKey:  apiKey,
		Model:   model,
		BaseURL: "https://generativelanguage.googleapis.com/v1beta",
	}
	log.Println("✅ Chat assistant initialized successfully.")
}

// IsCancerRelated is the keyword gate applied before any model call.
func IsCancerRelated(text string) bool {
	lower := strings.ToLower(text)
	for _, keyword := range cancerKeywords {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// OffTopicReply is the canned redirect for messages that fail the gate.
func OffTopicReply() string {
	return offTopicReply
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Role  string       `json:"role,omitempty"`
	Parts []geminiPart `json:"parts"`
}

type geminiRequest struct {
	SystemInstruction *geminiContent  `json:"system_instruction,omitempty"`
	Contents          []geminiContent `json:"contents"`
	GenerationConfig  struct {
		Temperature     float64 `json:"temperature"`
		TopK            int     `json:"topK"`
		TopP            float64 `json:"topP"`
		MaxOutputTokens int     `json:"maxOutputTokens"`
	} `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// GenerateReply sends the conversation history plus the new message to the
// Gemini generateContent API and returns the assistant's text.
func (s *GeminiService) GenerateReply(history []models.ChatMessage, message string) (string, error) {
	reqBody := geminiRequest{
		SystemInstruction: &geminiContent{Parts: []geminiPart{{Text: systemPrompt}}},
	}
	reqBody.GenerationConfig.Temperature = 0.7
	reqBody.GenerationConfig.TopK = 40
	reqBody.GenerationConfig.TopP = 0.95
	reqBody.GenerationConfig.MaxOutputTokens = 1024

	for _, msg := range history {
		role := "user"
		if msg.Role == "assistant" {
			role = "model"
		}
		reqBody.Contents = append(reqBody.Contents, geminiContent{
			Role:  role,
			Parts: []geminiPart{{Text: msg.Content}},
		})
	}
	reqBody.Contents = append(reqBody.Contents, geminiContent{
		Role:  "user",
		Parts: []geminiPart{{Text: message}},
	})

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %v", err)
	}

	url := fmt.Sprintf("%s/models/%s:generateContent?key=%s", s.BaseURL, s.Model, s.APIKey)
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.Client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	var parsed geminiResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse model response: %v", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("model API error: %s", parsed.Error.Message)
	}
	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("model returned no candidates")
	}

	return parsed.Candidates[0].Content.Parts[0].Text, nil
}
