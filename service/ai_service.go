package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"time"

	"debt-agent/domain"
)

type AIService struct {
	apiKey     string
	apiURL     string
	enabled    bool
	httpClient *http.Client
}

type OpenAIRequest struct {
	Model     string    `json:"model"`
	Messages  []Message `json:"messages"`
	MaxTokens int       `json:"max_tokens,omitempty"`
}

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type OpenAIResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func NewAIService() *AIService {
	apiKey := os.Getenv("OPENAI_API_KEY")
	enabled := apiKey != ""

	return &AIService{
		apiKey:  apiKey,
		apiURL:  "https://api.openai.com/v1/chat/completions",
		enabled: enabled,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// GenerateStrategyExplanation genera una explicación para la estrategia
// recomendada comparando ambos escenarios. Si el servicio está deshabilitado
// o falla, devuelve una explicación estática.
func (s *AIService) GenerateStrategyExplanation(
	recommended domain.Strategy,
	totalDebt float64,
	snowball domain.PayoffScenario,
	avalanche domain.PayoffScenario,
) string {
	best := snowball
	if recommended == domain.StrategyAvalanche {
		best = avalanche
	}

	if !s.enabled {
		return s.generateFallbackExplanation(recommended, best.TotalInterest, best.TotalMonths)
	}

	strategyName := "Snowball (Bola de Nieve)"
	strategyDesc := "Esta estrategia prioriza pagar primero las deudas más pequeñas, generando motivación psicológica al ver progreso rápido."
	if recommended == domain.StrategyAvalanche {
		strategyName = "Avalanche (Avalancha)"
		strategyDesc = "Esta estrategia prioriza pagar primero las deudas con mayor tasa de interés, minimizando el costo total de intereses."
	}

	prompt := fmt.Sprintf(`Analiza este plan de pago de deudas y genera una explicación clara, motivacional y educativa.

ESTRATEGIA RECOMENDADA: %s
%s

RESUMEN FINANCIERO:
- Total de deuda: $%.2f USD
- Total de intereses con la estrategia recomendada: $%.2f USD
- Tiempo estimado para pagar todo: %d meses (%.1f años)

COMPARACIÓN DE ESTRATEGIAS:
- Método Snowball: $%.2f USD en intereses, %d meses
- Método Avalanche: $%.2f USD en intereses, %d meses

INSTRUCCIONES:
1. Explica de manera clara qué es la estrategia %s y cómo funciona.
2. Explica las diferencias entre las dos estrategias con los números dados.
3. Proporciona consejos prácticos y motivacionales para mantener el plan.
4. Sé específico con los montos y los tiempos.

Genera una explicación de 4-5 oraciones que sea fácil de entender y que motive al usuario a seguir el plan.`,
		strategyName, strategyDesc,
		totalDebt, best.TotalInterest,
		best.TotalMonths, float64(best.TotalMonths)/12.0,
		snowball.TotalInterest, snowball.TotalMonths,
		avalanche.TotalInterest, avalanche.TotalMonths,
		strategyName)

	explanation, err := s.callLLM(prompt)
	if err != nil {
		log.Printf("Error calling AI service for strategy recommendation: %v", err)
		return s.generateFallbackExplanation(recommended, best.TotalInterest, best.TotalMonths)
	}

	return explanation
}

func (s *AIService) callLLM(prompt string) (string, error) {
	reqBody := OpenAIRequest{
		Model: "gpt-4o-mini",
		Messages: []Message{
			{
				Role:    "system",
				Content: "Eres un asesor financiero experto en manejo de deudas personales. Proporcionas explicaciones claras, precisas y motivacionales en español sobre estrategias de pago de deudas (snowball, avalanche), consolidación y liquidación. Todos los montos van en dólares estadounidenses (USD). Tus explicaciones son educativas, fáciles de entender y ayudan a los usuarios a tomar decisiones financieras informadas.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		MaxTokens: 300,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequest("POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", err
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("API error (status %d): %s", resp.StatusCode, string(body))
	}

	var openAIResp OpenAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&openAIResp); err != nil {
		return "", err
	}

	if len(openAIResp.Choices) == 0 {
		return "", fmt.Errorf("no response from AI")
	}

	return openAIResp.Choices[0].Message.Content, nil
}

func (s *AIService) generateFallbackExplanation(
	strategy domain.Strategy,
	totalInterest float64,
	months int,
) string {
	strategyName := "Snowball (Bola de Nieve)"
	if strategy == domain.StrategyAvalanche {
		strategyName = "Avalanche (Avalancha)"
	}
	return fmt.Sprintf("Con la estrategia %s, pagarás $%.2f USD en intereses y terminarás de pagar todas tus deudas en %d meses (%.1f años). %s",
		strategyName, totalInterest, months, float64(months)/12.0,
		s.getStrategyTip(strategy))
}

func (s *AIService) getStrategyTip(strategy domain.Strategy) string {
	if strategy == domain.StrategySnowball {
		return "Esta estrategia te ayuda a mantener la motivación al ver progreso rápido pagando las deudas pequeñas primero, especialmente útil cuando tienes múltiples tarjetas de crédito o préstamos personales."
	}
	return "Esta estrategia minimiza el costo total pagando primero las deudas con mayor interés, ideal para reducir significativamente los intereses acumulados en préstamos y tarjetas de crédito."
}
