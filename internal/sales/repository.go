package sales

import (
	"context"
	"log/slog"

	"github.com/retail-daya/retail-daya/internal/warehouse"
)

// The two read-only queries the dashboard issues. The fact query pulls the
// whole sales table; the customer query joins contract records by vehicle
// frame number.
const (
	factQuery = `SELECT * FROM LAPJUAL`

	customerQuery = `SELECT
		l.local_id,
		l.fixdate AS tgl_nd,
		fn.TGL_MOHON AS tgl_faktur_md,
		l."NO.MEMO" AS no_espk,
		l."NO.INVOICE" AS no_nd,
		l."NO.SURATJALAN(SJ)" AS no_sj_nd,
		l.NAMAKONSUMEN,
		fn.TGL_LAHIR,
		fn.PEKERJAAN AS pekerjaan_kons,
		fn.PENGELUARAN AS pengeluaran_kons,
		fn.DIGUNAKAN AS gunakan_kons,
		l.ALAMATKONSUMEN,
		l.KELURAHAN,
		l.KECAMATAN,
		l."KOTA/KAB",
		l.NAMASALESFORCE,
		l.SEGMENT,
		l.SERIES,
		l.SALESTYPE,
		l.TIPEUNIT,
		l."NO.RANGKA",
		l.TIPEPEMBAYARAN,
		l.LEASING,
		fn.UANG_MUKA AS cr_dp,
		fn.TENOR AS cr_tenor,
		l.SOURCECHANNEL
	FROM LAPJUAL l
	LEFT JOIN faktur_net fn ON fn.NO_RANGKA = l."NO.RANGKA"`
)

// Repository loads normalized event collections from the warehouse.
type Repository interface {
	SaleEvents(ctx context.Context) ([]Event, error)
	CustomerEvents(ctx context.Context) ([]Event, error)
}

// WarehouseRepository implements Repository over a warehouse Source.
type WarehouseRepository struct {
	src    warehouse.Source
	logger *slog.Logger
}

// NewRepository constructs a warehouse-backed repository.
func NewRepository(src warehouse.Source, logger *slog.Logger) *WarehouseRepository {
	return &WarehouseRepository{src: src, logger: logger}
}

// SaleEvents fetches and normalizes the sales fact table.
func (r *WarehouseRepository) SaleEvents(ctx context.Context) ([]Event, error) {
	rows, err := r.src.Query(ctx, factQuery)
	if err != nil {
		return nil, err
	}
	return Normalize(FromRows(rows, ColDate, ColMemo), r.logger), nil
}

// CustomerEvents fetches and normalizes the contract-joined customer dataset.
func (r *WarehouseRepository) CustomerEvents(ctx context.Context) ([]Event, error) {
	rows, err := r.src.Query(ctx, customerQuery)
	if err != nil {
		return nil, err
	}
	return Normalize(FromRows(rows, CustomerColDate, CustomerColMemo), r.logger), nil
}

var _ Repository = (*WarehouseRepository)(nil)
