package model

// Configuracion is the per-user settings blob. FechaNegocioAbierta tracks
// the register day currently receiving ventas; nil until the first close.
// The branding fields are consumed only by printable reports.
type Configuracion struct {
	FechaNegocioAbierta *Fecha `json:"fecha_negocio_abierta,omitempty"`
	NombreComercio      string `json:"nombre_comercio,omitempty"`
	LogoURL             string `json:"logo_url,omitempty"`
}

// Documento is the whole per-user ledger: the single JSON blob the state
// endpoint stores under the user's email. Every business mutation is a
// transformation of this value; persistence replaces the remote copy
// completely on each save.
type Documento struct {
	Productos     []Producto    `json:"productos"`
	Ventas        []Venta       `json:"ventas"`
	Movimientos   []Movimiento  `json:"movimientos"`
	Proveedores   []Proveedor   `json:"proveedores"`
	Cierres       Cierres       `json:"cierres"`
	Fiadores      []Fiador      `json:"fiadores"`
	Configuracion Configuracion `json:"configuracion"`
}

// NuevoDocumento returns an empty, normalized document.
func NuevoDocumento() *Documento {
	d := &Documento{}
	d.Normalizar()
	return d
}

// Normalizar defaults missing collections after decoding a document whose
// fields the remote endpoint may omit.
func (d *Documento) Normalizar() {
	if d.Productos == nil {
		d.Productos = []Producto{}
	}
	if d.Ventas == nil {
		d.Ventas = []Venta{}
	}
	if d.Movimientos == nil {
		d.Movimientos = []Movimiento{}
	}
	if d.Proveedores == nil {
		d.Proveedores = []Proveedor{}
	}
	if d.Cierres == nil {
		d.Cierres = Cierres{}
	}
	if d.Fiadores == nil {
		d.Fiadores = []Fiador{}
	}
}

// BuscarProductoPorEAN returns the first catalog entry matching the code
// case-insensitively, or nil.
func (d *Documento) BuscarProductoPorEAN(ean string) *Producto {
	for i := range d.Productos {
		if d.Productos[i].MismoEAN(ean) {
			return &d.Productos[i]
		}
	}
	return nil
}

// BuscarFiador returns the credit account matching the person name
// case-insensitively, or nil.
func (d *Documento) BuscarFiador(nombre string) *Fiador {
	for i := range d.Fiadores {
		if d.Fiadores[i].MismoNombre(nombre) {
			return &d.Fiadores[i]
		}
	}
	return nil
}

// Clone returns a deep copy, used for read snapshots so derived views never
// alias the live document.
func (d *Documento) Clone() *Documento {
	out := &Documento{
		Productos:     make([]Producto, len(d.Productos)),
		Ventas:        make([]Venta, len(d.Ventas)),
		Movimientos:   make([]Movimiento, len(d.Movimientos)),
		Proveedores:   make([]Proveedor, len(d.Proveedores)),
		Cierres:       make(Cierres, len(d.Cierres)),
		Fiadores:      make([]Fiador, len(d.Fiadores)),
		Configuracion: d.Configuracion,
	}
	copy(out.Productos, d.Productos)
	copy(out.Movimientos, d.Movimientos)
	copy(out.Proveedores, d.Proveedores)
	for f, c := range d.Cierres {
		out.Cierres[f] = c
	}
	for i, v := range d.Ventas {
		v.Items = append([]ItemVenta(nil), v.Items...)
		v.Pagos = append([]Pago(nil), v.Pagos...)
		if v.FechaNegocio != nil {
			f := *v.FechaNegocio
			v.FechaNegocio = &f
		}
		out.Ventas[i] = v
	}
	for i, fi := range d.Fiadores {
		fi.Cargos = cloneCargos(fi.Cargos)
		fi.Pagos = append([]PagoFiado(nil), fi.Pagos...)
		out.Fiadores[i] = fi
	}
	if d.Configuracion.FechaNegocioAbierta != nil {
		f := *d.Configuracion.FechaNegocioAbierta
		out.Configuracion.FechaNegocioAbierta = &f
	}
	return out
}

func cloneCargos(cargos []Cargo) []Cargo {
	out := make([]Cargo, len(cargos))
	for i, c := range cargos {
		items := make([]ItemCargo, len(c.Items))
		for j, it := range c.Items {
			if it.PrecioCongelado != nil {
				p := *it.PrecioCongelado
				it.PrecioCongelado = &p
			}
			items[j] = it
		}
		c.Items = items
		out[i] = c
	}
	return out
}
