package constants

// Сервис OVC Callejero: консультация данных объекта по кадастровой ссылке (JSON)
const CatastroDNPRCURL = "https://ovc.catastro.meh.es/OVCServWeb/OVCWcfCallejero/COVCCallejero.svc/json/Consulta_DNPRC"

// Параметр запроса с кадастровой ссылкой
const CatastroRefParam = "RefCat"

// Шаблоны вторичных ссылок, строятся только из кадастровой ссылки
const (
	FacadeImageURLTemplate = "https://ovc.catastro.meh.es/OVCServWeb/OVCWcfLibres/OVCFotoFachada.svc/RecuperarFotoFachadaGet?ReferenciaCatastral=%s"
	ReportPDFURLTemplate   = "https://www1.sedecatastro.gob.es/CYCBienInmueble/SECImprimirCroquisyDatos.aspx?refcat=%s"
	MapURLTemplate         = "https://www1.sedecatastro.gob.es/Cartografia/BuscarParcelaInternet.aspx?refcat=%s"
)
