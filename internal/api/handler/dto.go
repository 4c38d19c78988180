package handler

// GastoCreateRequest represents a request to create a spending record directly
type GastoCreateRequest struct {
	Valor             float64 `json:"valor" binding:"required,gt=0"`
	Item              string  `json:"item" binding:"required"`
	Categoria         string  `json:"categoria" binding:"required"`
	MeioPagamento     *string `json:"meio_pagamento"`
	DescricaoOriginal *string `json:"descricao_original"`
}

// GastoUpdateRequest represents a partial update; absent fields are untouched
type GastoUpdateRequest struct {
	Valor             *float64 `json:"valor"`
	Item              *string  `json:"item"`
	Categoria         *string  `json:"categoria"`
	MeioPagamento     *string  `json:"meio_pagamento"`
	DescricaoOriginal *string  `json:"descricao_original"`
}

// GastoResponse represents a spending record in API responses
type GastoResponse struct {
	ID                int64   `json:"id"`
	Valor             float64 `json:"valor"`
	Item              string  `json:"item"`
	Categoria         string  `json:"categoria"`
	MeioPagamento     *string `json:"meio_pagamento"`
	DescricaoOriginal *string `json:"descricao_original"`
	DataCriacao       string  `json:"data_criacao"`
}

// ProcessamentoRequest represents a free-text processing request. Texto is
// deliberately unvalidated here: an empty text is a pipeline outcome
// (texto_vazio), not a request error.
type ProcessamentoRequest struct {
	Texto string `json:"texto"`
}

// ProcessamentoResponse represents the outcome of a processing attempt.
// Failures still answer HTTP 200; sucesso and erro carry the verdict.
type ProcessamentoResponse struct {
	Sucesso         bool           `json:"sucesso"`
	Gasto           *GastoResponse `json:"gasto,omitempty"`
	Erro            string         `json:"erro,omitempty"`
	TextoProcessado string         `json:"texto_processado"`
}

// ListParams represents skip/limit pagination for the listing endpoint.
// Out-of-range values are accepted here and clamped by the repository.
type ListParams struct {
	Skip  int `form:"skip,default=0"`
	Limit int `form:"limit,default=40"`
}

// HealthResponse reports liveness and the configured model serving modes
type HealthResponse struct {
	Status      string `json:"status"`
	WhisperMode string `json:"whisper_mode"`
	LLMMode     string `json:"llm_mode"`
}
