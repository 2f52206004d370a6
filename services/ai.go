package services

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"ak_dashboard/config"
	"ak_dashboard/models"

	"github.com/bytedance/sonic"
)

// EnhanceResult — итог одного обращения к генерации текста. Неудача не
// теряет текст пользователя: EnhancedText всегда содержит исходник.
type EnhanceResult struct {
	EnhancedText string `json:"enhancedText"`
	Success      bool   `json:"success"`
	Error        string `json:"error,omitempty"`
}

// aiProvider — один внешний сервис генерации текста.
type aiProvider interface {
	Name() string
	Complete(prompt string) (string, error)
}

// pollinationsProvider — основной сервис: промпт уходит прямо в путь URL,
// ответ приходит простым текстом.
type pollinationsProvider struct {
	baseURL string
	client  *http.Client
}

func (p *pollinationsProvider) Name() string { return "pollinations" }

func (p *pollinationsProvider) Complete(prompt string) (string, error) {
	resp, err := p.client.Get(p.baseURL + url.PathEscape(prompt))
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("статус %d", resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(body))
	if text == "" {
		return "", fmt.Errorf("пустой ответ")
	}
	return text, nil
}

// rapidAPIProvider — резервный сервис (chatgpt-42 aitohuman):
// POST {"text": prompt}, ответ {"result": "..."}.
type rapidAPIProvider struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

func (p *rapidAPIProvider) Name() string { return "rapidapi" }

func (p *rapidAPIProvider) Complete(prompt string) (string, error) {
	body, err := sonic.Marshal(map[string]string{"text": prompt})
	if err != nil {
		return "", err
	}
	req, err := http.NewRequest(http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("x-rapidapi-key", p.apiKey)
		if u, err := url.Parse(p.endpoint); err == nil {
			req.Header.Set("x-rapidapi-host", u.Host)
		}
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("статус %d", resp.StatusCode)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	var parsed struct {
		Result string `json:"result"`
	}
	if err := sonic.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("разбор ответа: %w", err)
	}
	if strings.TrimSpace(parsed.Result) == "" {
		return "", fmt.Errorf("пустой ответ")
	}
	return parsed.Result, nil
}

// AIClient — клиент улучшения характеристик. Провайдеры пробуются по
// порядку; каждый сбой лишь переключает на следующего.
type AIClient struct {
	providers []aiProvider
}

// NewAIClient собирает клиента из конфигурации: Pollinations первым,
// RapidAPI резервом.
func NewAIClient() *AIClient {
	httpClient := &http.Client{Timeout: 30 * time.Second}
	return &AIClient{providers: []aiProvider{
		&pollinationsProvider{baseURL: config.AIPrimaryURL, client: httpClient},
		&rapidAPIProvider{endpoint: config.AIFallbackURL, apiKey: config.AIFallbackKey, client: httpClient},
	}}
}

// newAIClientWith позволяет подставить провайдеров в тестах.
func newAIClientWith(providers ...aiProvider) *AIClient {
	return &AIClient{providers: providers}
}

// complete прогоняет промпт через цепочку провайдеров.
func (c *AIClient) complete(prompt, original string) EnhanceResult {
	var lastErr error
	for _, p := range c.providers {
		text, err := p.Complete(prompt)
		if err == nil {
			return EnhanceResult{EnhancedText: text, Success: true}
		}
		lastErr = err
	}
	result := EnhanceResult{
		EnhancedText: original,
		Error:        "Не удалось улучшить текст. Попробуйте позже.",
	}
	if lastErr != nil {
		result.Error = fmt.Sprintf("Не удалось улучшить текст: %v. Попробуйте позже.", lastErr)
	}
	return result
}

const studentEnhancePrompt = `Улучши эту характеристику студента, сделав её более профессиональной, информативной и конструктивной. Сохрани все упомянутые качества, но выражай их более академическим языком. Используй педагогическую терминологию, где уместно. Убедись, что результат звучит как профессиональная характеристика от преподавателя:

%s`

const groupEnhancePrompt = `Улучши эту характеристику учебной группы, сделав её более профессиональной, информативной и конструктивной. Сохрани все упомянутые аспекты, но выражай их более академическим языком. Используй педагогическую терминологию для описания групповой динамики, успеваемости и особенностей группы. Результат должен звучать как профессиональная характеристика группы от преподавателя:

%s`

// EnhanceStudent улучшает характеристику студента. Пустой текст — отказ
// без сетевого вызова.
func (c *AIClient) EnhanceStudent(text string) EnhanceResult {
	return c.enhance(studentEnhancePrompt, text)
}

// EnhanceGroup улучшает характеристику группы.
func (c *AIClient) EnhanceGroup(text string) EnhanceResult {
	return c.enhance(groupEnhancePrompt, text)
}

func (c *AIClient) enhance(promptTemplate, text string) EnhanceResult {
	if strings.TrimSpace(text) == "" {
		return EnhanceResult{
			EnhancedText: text,
			Error:        "Нет текста для улучшения",
		}
	}
	return c.complete(fmt.Sprintf(promptTemplate, text), text)
}

// BatchItem — итог улучшения одного элемента формы.
type BatchItem struct {
	Target string        `json:"target"` // "group" или id студента
	Result EnhanceResult `json:"result"`
}

// EnhanceAll последовательно улучшает комментарии формы: сначала общий,
// затем по студентам в порядке ростера. Пустые пропускаются, сбой одного
// элемента не прерывает остальные. Успешный результат сразу записывается
// в форму, чтобы порядок записей был детерминированным.
func (c *AIClient) EnhanceAll(form *models.CharacteristicForm) []BatchItem {
	var items []BatchItem

	if strings.TrimSpace(form.GroupComment) != "" {
		result := c.EnhanceGroup(form.GroupComment)
		if result.Success {
			form.GroupComment = result.EnhancedText
		}
		items = append(items, BatchItem{Target: "group", Result: result})
	}

	for i := range form.Students {
		sc := &form.Students[i]
		if strings.TrimSpace(sc.Comment) == "" {
			continue
		}
		result := c.EnhanceStudent(sc.Comment)
		if result.Success {
			sc.Comment = result.EnhancedText
		}
		items = append(items, BatchItem{Target: sc.StudentID, Result: result})
	}

	return items
}

// GenerateFromKeywords составляет новую характеристику по имени, уровню
// успеваемости и выбранным ключевым словам.
func (c *AIClient) GenerateFromKeywords(name string, keywordLabels []string, academicLevel string) EnhanceResult {
	if strings.TrimSpace(name) == "" {
		return EnhanceResult{Error: "Не указано имя студента"}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Составь профессиональную характеристику студента %s от лица преподавателя.", name)
	if academicLevel != "" {
		fmt.Fprintf(&b, " Уровень успеваемости: %s.", academicLevel)
	}
	if len(keywordLabels) > 0 {
		fmt.Fprintf(&b, " Отметь следующие качества: %s.", strings.Join(keywordLabels, ", "))
	}
	b.WriteString(" Используй педагогическую терминологию, пиши связным текстом из 3-5 предложений.")

	return c.complete(b.String(), "")
}
