package service

import (
	"bytes"
	"encoding/csv"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/landaetal/despensaapp/internal/apierror"
	"github.com/landaetal/despensaapp/internal/dto"
	"github.com/landaetal/despensaapp/internal/estado"
	"github.com/landaetal/despensaapp/internal/model"
	"github.com/landaetal/despensaapp/internal/money"
)

// ProductoService maintains the catalog. Products are never deleted
// automatically; CSV import merges by EAN.
type ProductoService struct{}

func NewProductoService() *ProductoService { return &ProductoService{} }

func (s *ProductoService) Listar(st *estado.Store) ([]dto.ProductoResponse, error) {
	doc, err := st.Snapshot()
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductoResponse, 0, len(doc.Productos))
	for _, p := range doc.Productos {
		out = append(out, productoToResponse(p))
	}
	return out, nil
}

// BuscarPorEAN is the scan lookup: case-insensitive exact match on the
// business code.
func (s *ProductoService) BuscarPorEAN(st *estado.Store, ean string) (*dto.ProductoResponse, error) {
	doc, err := st.Snapshot()
	if err != nil {
		return nil, err
	}
	p := doc.BuscarProductoPorEAN(ean)
	if p == nil {
		return nil, apierror.NoEncontrado("no existe producto con código %s", ean)
	}
	resp := productoToResponse(*p)
	return &resp, nil
}

func (s *ProductoService) Crear(st *estado.Store, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	if req.Precio.IsNegative() {
		return nil, apierror.Validacion("el precio no puede ser negativo")
	}
	nuevo := model.Producto{
		ID:     uuid.New(),
		EAN:    strings.TrimSpace(req.EAN),
		Nombre: strings.TrimSpace(req.Nombre),
		Precio: req.Precio,
	}
	if nuevo.EAN == "" || nuevo.Nombre == "" {
		return nil, apierror.Validacion("código y nombre son obligatorios")
	}
	err := st.Aplicar(func(doc *model.Documento) error {
		if doc.BuscarProductoPorEAN(nuevo.EAN) != nil {
			return apierror.Validacion("ya existe un producto con código %s", nuevo.EAN)
		}
		doc.Productos = append(doc.Productos, nuevo)
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := productoToResponse(nuevo)
	return &resp, nil
}

func (s *ProductoService) Actualizar(st *estado.Store, id uuid.UUID, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	if req.Precio.IsNegative() {
		return nil, apierror.Validacion("el precio no puede ser negativo")
	}
	var actualizado model.Producto
	err := st.Aplicar(func(doc *model.Documento) error {
		for i := range doc.Productos {
			if doc.Productos[i].ID == id {
				doc.Productos[i].Nombre = strings.TrimSpace(req.Nombre)
				doc.Productos[i].Precio = req.Precio
				actualizado = doc.Productos[i]
				return nil
			}
		}
		return apierror.NoEncontrado("producto no encontrado")
	})
	if err != nil {
		return nil, err
	}
	resp := productoToResponse(actualizado)
	return &resp, nil
}

// PreciosReventa derives the channel listing prices for one product.
func (s *ProductoService) PreciosReventa(st *estado.Store, id uuid.UUID) ([]dto.PrecioReventaResponse, error) {
	doc, err := st.Snapshot()
	if err != nil {
		return nil, err
	}
	for _, p := range doc.Productos {
		if p.ID == id {
			out := make([]dto.PrecioReventaResponse, 0, len(money.Canales))
			for _, canal := range money.Canales {
				out = append(out, dto.PrecioReventaResponse{
					Canal:  canal.Nombre,
					Margen: canal.Margen,
					Precio: money.PrecioReventa(p.Precio, canal),
				})
			}
			return out, nil
		}
	}
	return nil, apierror.NoEncontrado("producto no encontrado")
}

// ── CSV import/export ─────────────────────────────────────────────────────────
// Three columns `ean,nombre,precio`, comma- or semicolon-delimited, header
// required with exactly those names (case-insensitive). Import merges by EAN:
// existing products get nombre/precio overwritten keeping their id, new EANs
// are appended.

func (s *ProductoService) ImportarCSV(st *estado.Store, r io.Reader) (*dto.ImportarCSVResponse, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, apierror.Validacion("no se pudo leer el archivo: %v", err)
	}
	filas, err := parseCSVProductos(data)
	if err != nil {
		return nil, err
	}

	resumen := &dto.ImportarCSVResponse{}
	err = st.Aplicar(func(doc *model.Documento) error {
		for _, fila := range filas {
			if existente := doc.BuscarProductoPorEAN(fila.EAN); existente != nil {
				existente.Nombre = fila.Nombre
				existente.Precio = fila.Precio
				resumen.Actualizados++
				continue
			}
			doc.Productos = append(doc.Productos, model.Producto{
				ID:     uuid.New(),
				EAN:    fila.EAN,
				Nombre: fila.Nombre,
				Precio: fila.Precio,
			})
			resumen.Agregados++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resumen, nil
}

func (s *ProductoService) ExportarCSV(st *estado.Store, w io.Writer) error {
	doc, err := st.Snapshot()
	if err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"ean", "nombre", "precio"}); err != nil {
		return err
	}
	for _, p := range doc.Productos {
		if err := cw.Write([]string{p.EAN, p.Nombre, p.Precio.String()}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

type filaProducto struct {
	EAN    string
	Nombre string
	Precio decimal.Decimal
}

func parseCSVProductos(data []byte) ([]filaProducto, error) {
	encabezado := data
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		encabezado = data[:i]
	}
	delimitador := ','
	if bytes.Count(encabezado, []byte(";")) > bytes.Count(encabezado, []byte(",")) {
		delimitador = ';'
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = delimitador
	cr.TrimLeadingSpace = true
	registros, err := cr.ReadAll()
	if err != nil {
		return nil, apierror.Validacion("CSV inválido: %v", err)
	}
	if len(registros) == 0 {
		return nil, apierror.Validacion("CSV vacío")
	}

	cab := registros[0]
	if len(cab) != 3 ||
		!strings.EqualFold(strings.TrimSpace(cab[0]), "ean") ||
		!strings.EqualFold(strings.TrimSpace(cab[1]), "nombre") ||
		!strings.EqualFold(strings.TrimSpace(cab[2]), "precio") {
		return nil, apierror.Validacion("el encabezado debe ser ean,nombre,precio")
	}

	filas := make([]filaProducto, 0, len(registros)-1)
	for n, reg := range registros[1:] {
		if len(reg) != 3 {
			return nil, apierror.Validacion("fila %d: se esperaban 3 columnas", n+2)
		}
		ean := strings.TrimSpace(reg[0])
		nombre := strings.TrimSpace(reg[1])
		if ean == "" || nombre == "" {
			return nil, apierror.Validacion("fila %d: ean y nombre son obligatorios", n+2)
		}
		filas = append(filas, filaProducto{EAN: ean, Nombre: nombre, Precio: parsePrecioCSV(reg[2])})
	}
	return filas, nil
}

// parsePrecioCSV accepts both plain decimal-point prices and the localized
// "1.234,56" style; anything unparsable fails soft to 0 like the forms do.
func parsePrecioCSV(raw string) decimal.Decimal {
	s := strings.TrimSpace(raw)
	if d, err := decimal.NewFromString(s); err == nil {
		return d
	}
	return money.ParseImporte(s)
}

func productoToResponse(p model.Producto) dto.ProductoResponse {
	return dto.ProductoResponse{
		ID:     p.ID.String(),
		EAN:    p.EAN,
		Nombre: p.Nombre,
		Precio: p.Precio,
	}
}
