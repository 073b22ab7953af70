// Package filing reglas puras de colocación de documentos: categorías, tipos permitidos,
// rutas de carpeta y de almacenamiento.
package filing

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/jhoicas/estatedesk-api/internal/domain"
	"github.com/jhoicas/estatedesk-api/internal/domain/entity"
)

// DefaultMaxSize tamaño máximo por defecto de un archivo (10 MiB).
const DefaultMaxSize int64 = 10 * 1024 * 1024

// Rango aceptado para el año de carpetas contables.
const (
	MinYear = 1900
	MaxYear = 2100
)

// Category categoría de un documento de zona.
type Category string

const (
	CategoryGeneral         Category = "general"
	CategoryCompanyAccounts Category = "company_accounts"
	CategoryCompanyClaims   Category = "company_claims"
)

// Prefijos de carpeta por categoría.
const (
	FolderGeneral  = "general"
	FolderAccounts = "company-accounts"
	FolderClaims   = "company-claims"
)

// AccountTypes tipos de documento de la categoría company_accounts con su etiqueta.
var AccountTypes = []TypeLabel{
	{"tax_return", "Tax Return"},
	{"profit_loss", "Profit & Loss Statement"},
	{"balance_sheet", "Balance Sheet"},
	{"annual_accounts", "Annual Accounts"},
	{"management_accounts", "Management Accounts"},
}

// ClaimTypes tipos de documento de la categoría company_claims con su etiqueta.
var ClaimTypes = []TypeLabel{
	{"insurance_claim", "Insurance Claim"},
	{"warranty_claim", "Warranty Claim"},
	{"legal_claim", "Legal Claim"},
	{"compensation_claim", "Compensation Claim"},
	{"other_claim", "Other Claim"},
}

// TypeLabel código de tipo de documento y su nombre visible.
type TypeLabel struct {
	Code  string `json:"code"`
	Label string `json:"label"`
}

var allowedExtensions = map[entity.OwnerKind][]string{
	entity.OwnerZone:     {"pdf", "docx", "txt", "xlsx", "xls"},
	entity.OwnerBuilding: {"pdf", "docx", "txt"},
	entity.OwnerUnit:     {"pdf", "docx", "txt", "jpg", "jpeg", "png"},
}

// AllowedExtensions extensiones aceptadas para el tipo de dueño.
func AllowedExtensions(kind entity.OwnerKind) []string {
	return append([]string(nil), allowedExtensions[kind]...)
}

// Placement datos de categoría de una carga a zona.
type Placement struct {
	Category     Category
	Year         *int
	DocumentType *string
}

// CheckFile valida extensión y tamaño antes de tocar almacenamiento o base de datos.
func CheckFile(kind entity.OwnerKind, fileName string, size, maxSize int64) error {
	if maxSize <= 0 {
		maxSize = DefaultMaxSize
	}
	if size > maxSize {
		return fmt.Errorf("%w (max %d KB)", domain.ErrFileTooLarge, maxSize/1024)
	}
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))
	for _, allowed := range allowedExtensions[kind] {
		if ext == allowed {
			return nil
		}
	}
	return fmt.Errorf("%w: allowed types are %s", domain.ErrFileTypeNotAllowed, strings.Join(allowedExtensions[kind], ", "))
}

// ValidatePlacement valida categoría, año y tipo de documento de una carga a zona.
func ValidatePlacement(p Placement) error {
	verr := domain.NewValidationError()
	switch p.Category {
	case CategoryGeneral:
		return nil
	case CategoryCompanyAccounts, CategoryCompanyClaims:
	default:
		verr.Add("category", "must be one of general, company_accounts, company_claims")
		return verr
	}
	if p.Year == nil {
		verr.Add("year", "is required for this category")
	} else if *p.Year < MinYear || *p.Year > MaxYear {
		verr.Add("year", fmt.Sprintf("must be between %d and %d", MinYear, MaxYear))
	}
	if p.DocumentType == nil || *p.DocumentType == "" {
		verr.Add("document_type", "is required for this category")
	} else if !knownType(p.Category, *p.DocumentType) {
		verr.Add("document_type", "is not valid for this category")
	}
	return verr.OrNil()
}

func knownType(c Category, code string) bool {
	list := AccountTypes
	if c == CategoryCompanyClaims {
		list = ClaimTypes
	}
	for _, t := range list {
		if t.Code == code {
			return true
		}
	}
	return false
}

// FolderPath carpeta lógica de la categoría: general | company-accounts/{year} | company-claims/{year}.
func FolderPath(p Placement) string {
	switch p.Category {
	case CategoryCompanyAccounts:
		return fmt.Sprintf("%s/%d", FolderAccounts, *p.Year)
	case CategoryCompanyClaims:
		return fmt.Sprintf("%s/%d", FolderClaims, *p.Year)
	default:
		return FolderGeneral
	}
}

// FolderDisplayName nombre visible de una carpeta.
func FolderDisplayName(folderPath string) string {
	switch {
	case folderPath == "" || folderPath == FolderGeneral:
		return "General"
	case strings.HasPrefix(folderPath, FolderAccounts+"/"):
		return "Accounts " + strings.TrimPrefix(folderPath, FolderAccounts+"/")
	case strings.HasPrefix(folderPath, FolderClaims+"/"):
		return "Claims " + strings.TrimPrefix(folderPath, FolderClaims+"/")
	}
	s := strings.ReplaceAll(folderPath, "-", " ")
	return strings.ToUpper(s[:1]) + s[1:]
}

// DocumentTypeLabel etiqueta visible de un tipo de documento; el código si no se conoce.
func DocumentTypeLabel(code string) string {
	for _, list := range [][]TypeLabel{AccountTypes, ClaimTypes} {
		for _, t := range list {
			if t.Code == code {
				return t.Label
			}
		}
	}
	return code
}

// Chain slugs de la jerarquía del dueño. Building y Unit vacíos según el tipo.
type Chain struct {
	Zone     string
	Building string
	Unit     string
}

// Directory directorio de almacenamiento para el dueño:
// {zone}/{folder} | {zone}/buildings/{b} | {zone}/buildings/{b}/units/{u}.
func Directory(kind entity.OwnerKind, c Chain, folder string) string {
	switch kind {
	case entity.OwnerZone:
		return path.Join(c.Zone, folder)
	case entity.OwnerBuilding:
		return path.Join(c.Zone, "buildings", c.Building)
	case entity.OwnerUnit:
		return path.Join(c.Zone, "buildings", c.Building, "units", c.Unit)
	default:
		panic(fmt.Sprintf("filing: tipo de dueño desconocido %q", kind))
	}
}

// BaseName reduce el nombre enviado por el cliente a su nombre base (sin directorios).
func BaseName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")
	base := path.Base(name)
	if base == "." || base == "/" || base == ".." {
		return ""
	}
	return base
}

// CandidateName nombre para el intento n: n=0 el original, n>0 "nombre (n).ext".
func CandidateName(fileName string, n int) string {
	if n <= 0 {
		return fileName
	}
	ext := path.Ext(fileName)
	stem := strings.TrimSuffix(fileName, ext)
	return fmt.Sprintf("%s (%d)%s", stem, n, ext)
}
