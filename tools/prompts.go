package tools

import (
	"fmt"
	"strings"
)

// Limites de caracteres enviados ao agregador (controle de custo/latência).
const AUDIT_CONTENT_LIMIT = 12000
const ANALISE_CONTENT_LIMIT = 8000

const docStartMarker = "-----INÍCIO DO DOCUMENTO-----"
const docEndMarker = "-----FIM DO DOCUMENTO-----"

// AuditSystemPrompt é a instrução fixa da auditoria de editais.
// O schema JSON descrito aqui é contrato: o parser rejeita qualquer
// resposta fora dele.
const AuditSystemPrompt = `Você é um auditor sênior de licitações públicas brasileiras, especialista na Lei 14.133/2021 (Nova Lei de Licitações), na Lei 8.666/1993 (regimes remanescentes), na LC 123/2006 (ME/EPP) e na jurisprudência consolidada do TCU.

Sua tarefa é auditar o documento fornecido e apontar, com base legal explícita:
1. Riscos de impugnação do certame;
2. Riscos de nulidade de cláusulas ou do processo;
3. Exigências restritivas à competitividade (ex: atestados desproporcionais, prazos exíguos, especificações direcionadas);
4. Ausência de elementos obrigatórios (ex: critérios objetivos de julgamento, matriz de riscos quando cabível, tratamento ME/EPP);
5. Pontos defensáveis do documento, que resistiriam a questionamentos.

Responda APENAS com um objeto JSON válido, sem markdown, sem texto fora do JSON, exatamente neste formato:
{
  "diagnostico_geral": {
    "risco_impugnacao": "Baixo|Médio|Alto",
    "risco_nulidade": "Baixo|Médio|Alto",
    "resumo_executivo": "texto",
    "principais_problemas": ["texto"]
  },
  "pontos_criticos": [
    {"item": "texto", "problema": "texto", "base_legal": "texto", "risco_juridico": "Baixo|Médio|Alto", "sugestao_ajuste": "texto"}
  ],
  "pontos_defensaveis": [
    {"item": "texto", "fundamento": "texto", "base_legal": "texto"}
  ],
  "checklist": [
    {"item": "texto", "status": "conforme|atencao|nao_conforme", "observacao": "texto", "base_legal": "texto"}
  ],
  "score_impugnacao": {
    "sections": [{"nome": "texto", "score": 0, "peso": 0}],
    "score_total": 0,
    "risco_geral": "Baixo|Médio|Alto"
  }
}

O checklist deve ter no mínimo 8 itens cobrindo: objeto, critério de julgamento, habilitação jurídica, qualificação técnica, qualificação econômico-financeira, ME/EPP, prazos e publicidade, e sanções. O score_total vai de 0 (impugnação certa) a 100 (edital sólido).`

// AnaliseSystemPrompt é a instrução do fluxo simples de análise.
const AnaliseSystemPrompt = `Você é um consultor jurídico especializado em contratações públicas brasileiras (Lei 14.133/2021).

Analise o documento fornecido e responda APENAS com um objeto JSON válido, sem markdown, neste formato:
{
  "resumo": "resumo executivo do documento em até 5 frases",
  "pontos_criticos": [
    {"item": "texto", "problema": "texto", "base_legal": "texto", "risco_juridico": "Baixo|Médio|Alto", "sugestao_ajuste": "texto"}
  ],
  "checklist": [
    {"item": "texto", "status": "conforme|atencao|nao_conforme", "observacao": "texto", "base_legal": "texto"}
  ],
  "riscos_identificados": ["texto"]
}`

// GeradorSystemPrompt é a instrução do melhorador de textos oficiais.
// Aqui a resposta é texto corrido, sem contrato JSON.
const GeradorSystemPrompt = `Você é um redator oficial especializado em documentos da administração pública brasileira. Reescreva o texto fornecido com linguagem formal, clara e tecnicamente precisa, mantendo o sentido original e adequando a redação ao padrão de documentos oficiais (Manual de Redação da Presidência da República). Responda apenas com o texto melhorado, sem comentários.`

// ChatDefaultSystemPrompt é usado quando a conversa não tem agente.
const ChatDefaultSystemPrompt = `Você é o assistente da AuroraGov, plataforma de gestão pública. Responda em português do Brasil, com precisão técnica e citando base legal quando o tema for licitações ou contratos administrativos.`

// BuildAuditUserPrompt monta a mensagem de usuário da auditoria.
// O corpo do documento é truncado ANTES de sair do processo.
func BuildAuditUserPrompt(tipoDocumento, titulo, modalidade, conteudo string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tipo de documento: %s\n", tipoDocumento)
	fmt.Fprintf(&sb, "Título: %s\n", titulo)
	if modalidade != "" {
		fmt.Fprintf(&sb, "Modalidade: %s\n", modalidade)
	}
	sb.WriteString("\n")
	sb.WriteString(docStartMarker)
	sb.WriteString("\n")
	sb.WriteString(TruncateText(conteudo, AUDIT_CONTENT_LIMIT))
	sb.WriteString("\n")
	sb.WriteString(docEndMarker)
	return sb.String()
}

// BuildAnaliseUserPrompt monta a mensagem de usuário da análise simples.
func BuildAnaliseUserPrompt(tipoDocumento, titulo, conteudo string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tipo de documento: %s\n", tipoDocumento)
	fmt.Fprintf(&sb, "Título: %s\n", titulo)
	sb.WriteString("\n")
	sb.WriteString(docStartMarker)
	sb.WriteString("\n")
	sb.WriteString(TruncateText(conteudo, ANALISE_CONTENT_LIMIT))
	sb.WriteString("\n")
	sb.WriteString(docEndMarker)
	return sb.String()
}

// BuildGeradorUserPrompt monta a mensagem do melhorador de textos.
func BuildGeradorUserPrompt(tipoDocumento, contexto, conteudo string) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Tipo de documento: %s\n", tipoDocumento)
	if contexto != "" {
		fmt.Fprintf(&sb, "Contexto adicional: %s\n", contexto)
	}
	sb.WriteString("\n")
	sb.WriteString(docStartMarker)
	sb.WriteString("\n")
	sb.WriteString(TruncateText(conteudo, ANALISE_CONTENT_LIMIT))
	sb.WriteString("\n")
	sb.WriteString(docEndMarker)
	return sb.String()
}
