package models

// InventoryType groups items by business area. It is used for grouping and
// report filters only; no business rule branches on it.
type InventoryType string

const (
	InventoryTypeCafe       InventoryType = "cafe"
	InventoryTypeBarbershop InventoryType = "barbershop"
)

func (t InventoryType) IsValid() bool {
	return t == InventoryTypeCafe || t == InventoryTypeBarbershop
}

type ItemKind string

const (
	ItemKindRawMaterial   ItemKind = "raw_material"
	ItemKindRetailProduct ItemKind = "retail_product"
)

func (t ItemKind) IsValid() bool {
	return t == ItemKindRawMaterial || t == ItemKindRetailProduct
}

type UnitType string

const (
	UnitTypeGram  UnitType = "gram"
	UnitTypeMl    UnitType = "ml"
	UnitTypePiece UnitType = "piece"
	UnitTypeLiter UnitType = "liter"
	UnitTypeKg    UnitType = "kg"
)

func (t UnitType) IsValid() bool {
	switch t {
	case UnitTypeGram, UnitTypeMl, UnitTypePiece, UnitTypeLiter, UnitTypeKg:
		return true
	}
	return false
}

type ServiceCategory string

const (
	ServiceCategoryHaircut  ServiceCategory = "haircut"
	ServiceCategoryStyling  ServiceCategory = "styling"
	ServiceCategoryMassage  ServiceCategory = "massage"
	ServiceCategoryColoring ServiceCategory = "coloring"
	ServiceCategoryOther    ServiceCategory = "other"
)

func (t ServiceCategory) IsValid() bool {
	switch t {
	case ServiceCategoryHaircut, ServiceCategoryStyling, ServiceCategoryMassage,
		ServiceCategoryColoring, ServiceCategoryOther:
		return true
	}
	return false
}

type InvoiceType string

const (
	InvoiceTypeBarbershop InvoiceType = "barbershop"
	InvoiceTypeCafe       InvoiceType = "cafe"
	InvoiceTypeMixed      InvoiceType = "mixed"
)

func (t InvoiceType) IsValid() bool {
	return t == InvoiceTypeBarbershop || t == InvoiceTypeCafe || t == InvoiceTypeMixed
}

type PaymentMethod string

const (
	PaymentMethodCash  PaymentMethod = "cash"
	PaymentMethodCard  PaymentMethod = "card"
	PaymentMethodMixed PaymentMethod = "mixed"
)

func (t PaymentMethod) IsValid() bool {
	return t == PaymentMethodCash || t == PaymentMethodCard || t == PaymentMethodMixed
}

// MovementType classifies stock ledger entries. "usage" rows carry negative
// deltas, "purchase" rows positive ones; "adjustment" rows may carry either.
type MovementType string

const (
	MovementTypePurchase   MovementType = "purchase"
	MovementTypeUsage      MovementType = "usage"
	MovementTypeAdjustment MovementType = "adjustment"
)

// SellableType discriminates an invoice line: a barbershop service, a cafe
// product, or an inventory item sold over the counter.
type SellableType string

const (
	SellableTypeService SellableType = "service"
	SellableTypeProduct SellableType = "product"
	SellableTypeRetail  SellableType = "retail"
)

func (t SellableType) IsValid() bool {
	return t == SellableTypeService || t == SellableTypeProduct || t == SellableTypeRetail
}

// BookingStatus is the appointment lifecycle. New bookings start pending;
// the front desk moves them forward (or cancels) as the day unfolds.
type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"
	BookingStatusConfirmed BookingStatus = "confirmed"
	BookingStatusCompleted BookingStatus = "completed"
	BookingStatusCancelled BookingStatus = "cancelled"
)

func (t BookingStatus) IsValid() bool {
	switch t {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCompleted, BookingStatusCancelled:
		return true
	}
	return false
}

type UserRole string

const (
	UserRoleAdmin   UserRole = "admin"
	UserRoleBarber  UserRole = "barber"
	UserRoleBarista UserRole = "barista"
)

func (t UserRole) IsValid() bool {
	return t == UserRoleAdmin || t == UserRoleBarber || t == UserRoleBarista
}

// ReferenceTypeInvoice tags stock movements created by a sale with the
// invoice that caused them.
const ReferenceTypeInvoice = "invoice"
