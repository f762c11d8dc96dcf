package catastrolinks

import (
	"fmt"
	"net/url"

	"catastro-service/internal/constants"
	"catastro-service/internal/core/domain"
)

// Links - вторичные ссылки на материалы Catastro по объекту
type Links struct {
	FacadeImage string `json:"facade_image"`
	ReportPDF   string `json:"report_pdf"`
	Map         string `json:"map"`
}

// DeriveLinks строит ссылки только из кадастровой ссылки, без обращения к реестру
func DeriveLinks(ref domain.CadastralReference) Links {
	escaped := url.QueryEscape(ref.Value)
	return Links{
		FacadeImage: fmt.Sprintf(constants.FacadeImageURLTemplate, escaped),
		ReportPDF:   fmt.Sprintf(constants.ReportPDFURLTemplate, escaped),
		Map:         fmt.Sprintf(constants.MapURLTemplate, escaped),
	}
}
