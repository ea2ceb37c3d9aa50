package inventario

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/safealert/safealert-api/internal/application/dto"
	"github.com/safealert/safealert-api/internal/domain"
	"github.com/safealert/safealert-api/internal/domain/entity"
	"github.com/safealert/safealert-api/internal/domain/repository"
	"github.com/safealert/safealert-api/pkg/logger"
)

// MovementUseCase registra entradas y salidas de stock de forma transaccional
// con bloqueo de la fila del producto (SELECT FOR UPDATE).
type MovementUseCase struct {
	alertCacheRef
	txRunner     TxRunner
	movementRepo repository.StockMovementRepository
	productRepo  repository.ProductRepository
	now          func() time.Time
}

// NewMovementUseCase construye el caso de uso.
func NewMovementUseCase(
	txRunner TxRunner,
	movementRepo repository.StockMovementRepository,
	productRepo repository.ProductRepository,
) *MovementUseCase {
	return &MovementUseCase{
		alertCacheRef: newAlertCacheRef(),
		txRunner:      txRunner,
		movementRepo:  movementRepo,
		productRepo:   productRepo,
		now:           time.Now,
	}
}

// WithAlertCache invalida la caché de alertas activas después de cada movimiento confirmado.
func (uc *MovementUseCase) WithAlertCache(c AlertCacheInvalidator, log *logger.Logger) *MovementUseCase {
	uc.set(c, log)
	return uc
}

// Register aplica el movimiento sobre el stock del producto y lo guarda.
// Una salida mayor al stock disponible devuelve domain.ErrInsufficientStock y no modifica nada.
func (uc *MovementUseCase) Register(ctx context.Context, userID string, in dto.RegisterMovementRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" {
		return nil, fmt.Errorf("%w: producto_id es requerido", domain.ErrInvalidInput)
	}
	if in.Type != entity.MovementTypeIn && in.Type != entity.MovementTypeOut {
		return nil, fmt.Errorf("%w: tipo debe ser entrada o salida", domain.ErrInvalidInput)
	}
	if !in.Quantity.IsPositive() {
		return nil, fmt.Errorf("%w: cantidad debe ser mayor a cero", domain.ErrInvalidInput)
	}

	movement := &entity.StockMovement{
		ID:        uuid.New().String(),
		ProductID: in.ProductID,
		Type:      in.Type,
		Quantity:  in.Quantity,
		Reason:    in.Reason,
		Date:      uc.now(),
		CreatedBy: userID,
	}
	var newStock decimal.Decimal

	err := uc.txRunner.RunStockMovement(ctx, func(
		productRepo repository.ProductRepository,
		movementRepo repository.StockMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil {
			return domain.ErrNotFound
		}
		switch in.Type {
		case entity.MovementTypeIn:
			newStock = product.StockQuantity.Add(in.Quantity)
		case entity.MovementTypeOut:
			if product.StockQuantity.LessThan(in.Quantity) {
				return fmt.Errorf("%w: disponible %s, solicitado %s",
					domain.ErrInsufficientStock, product.StockQuantity.String(), in.Quantity.String())
			}
			newStock = product.StockQuantity.Sub(in.Quantity)
		}
		if err := productRepo.UpdateStock(ctx, product.ID, newStock); err != nil {
			return err
		}
		return movementRepo.Create(ctx, movement)
	})
	if err != nil {
		return nil, err
	}
	uc.invalidateAlerts(ctx, in.ProductID)

	resp := toMovementResponse(movement)
	resp.NewStock = newStock
	return &resp, nil
}

// ListByProduct movimientos del producto, más reciente primero.
func (uc *MovementUseCase) ListByProduct(ctx context.Context, productID string, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	list, err := uc.movementRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, toMovementResponse(m))
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:        m.ID,
		ProductID: m.ProductID,
		Type:      m.Type,
		Quantity:  m.Quantity,
		Reason:    m.Reason,
		Date:      m.Date,
		CreatedBy: m.CreatedBy,
	}
}
