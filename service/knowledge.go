package service

import "strings"

// KnowledgeService answers FAQ, company-info and troubleshooting lookups
// from static in-process data. A vector-backed knowledge base can replace it
// behind the same methods.
type KnowledgeService struct{}

func NewKnowledgeService() *KnowledgeService {
	return &KnowledgeService{}
}

type FAQEntry struct {
	Topic   string `json:"topic"`
	Content string `json:"content"`
}

var faqEntries = []FAQEntry{
	{Topic: "horario", Content: "Nosso atendimento funciona 24 horas por dia, 7 dias por semana."},
	{Topic: "localizacao", Content: "Nossa sede fica na Av. Paulista, 1000, São Paulo - SP."},
	{Topic: "contato", Content: "Você pode entrar em contato pelo telefone 0800-123-4567 ou pelo email contato@centralai.com.br."},
	{Topic: "cancelamento", Content: "Para cancelar, entre em contato com o setor de retenção pelo 0800-123-4567, opção 5."},
	{Topic: "contratacao", Content: "Você pode contratar novos planos diretamente pelo nosso site ou app."},
}

// SearchFAQ matches known topics against the query text.
func (s *KnowledgeService) SearchFAQ(query string) []FAQEntry {
	query = strings.ToLower(query)

	var results []FAQEntry
	for _, entry := range faqEntries {
		if strings.Contains(query, entry.Topic) {
			results = append(results, entry)
		}
	}
	if len(results) == 0 && strings.Contains(query, "ajuda") {
		results = append(results, FAQEntry{
			Topic:   "ajuda",
			Content: "Posso ajudar com dúvidas sobre horários, localização, contato e planos.",
		})
	}
	return results
}

// CompanyInfo answers institutional questions by topic.
func (s *KnowledgeService) CompanyInfo(topic string) string {
	topic = strings.ToLower(topic)
	switch {
	case strings.Contains(topic, "horario") || strings.Contains(topic, "horas"):
		return faqEntries[0].Content
	case strings.Contains(topic, "endereco") || strings.Contains(topic, "local"):
		return faqEntries[1].Content
	case strings.Contains(topic, "telefone") || strings.Contains(topic, "email") || strings.Contains(topic, "contato"):
		return faqEntries[2].Content
	}
	return "Desculpe, não tenho essa informação específica. Tente perguntar sobre horários, endereço ou contato."
}

// TroubleshootingArticle is one knowledge-base hit for the technical agent.
type TroubleshootingArticle struct {
	Topic    string `json:"topic"`
	Solution string `json:"solution"`
}

var troubleshootingArticles = []TroubleshootingArticle{
	{Topic: "internet lenta", Solution: "Reinicie o roteador (desligue por 30 segundos), verifique se há muitos dispositivos conectados e teste por cabo."},
	{Topic: "sem conexao", Solution: "Verifique os LEDs do modem: se o LED 'LOS' estiver vermelho, há rompimento de fibra; abra um chamado."},
	{Topic: "wifi", Solution: "Aproxime-se do roteador, troque para a rede 5GHz e evite obstáculos entre o aparelho e o roteador."},
	{Topic: "tv", Solution: "Verifique o cabo HDMI e reinicie o decodificador; o desbloqueio de canais pode levar até 4 horas após upgrade."},
	{Topic: "telefone", Solution: "Teste o aparelho em outra tomada de linha; se o mudo persistir, o problema é na central."},
}

// SearchArticles returns troubleshooting articles whose topic overlaps with
// the query.
func (s *KnowledgeService) SearchArticles(query string) []TroubleshootingArticle {
	query = strings.ToLower(query)

	var results []TroubleshootingArticle
	for _, article := range troubleshootingArticles {
		for _, word := range strings.Fields(article.Topic) {
			if strings.Contains(query, word) {
				results = append(results, article)
				break
			}
		}
	}
	return results
}

// SystemStatus reports the operational state of each service line.
func (s *KnowledgeService) SystemStatus() map[string]string {
	return map[string]string{
		"internet_fiber":  "operational",
		"tv_service":      "operational",
		"phone_service":   "operational",
		"customer_portal": "operational",
	}
}
