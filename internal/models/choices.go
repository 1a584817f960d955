package models

const (
	DeliveryCourier      = 1
	DeliveryParcelLocker = 2
	DeliveryPersonal     = 3
)

const (
	PaymentOnDelivery = 1
	PaymentCard       = 2
	PaymentTransfer   = 3
)

var DeliveryMethods = map[int]string{
	DeliveryCourier:      "Courier delivery",
	DeliveryParcelLocker: "Pickup at a parcel locker",
	DeliveryPersonal:     "Personal pickup",
}

var PaymentMethods = map[int]string{
	PaymentOnDelivery: "Cash/card payment on delivery",
	PaymentCard:       "Online payment by credit card",
	PaymentTransfer:   "Traditional money transfer",
}

func ValidDeliveryMethod(m int) bool {
	_, ok := DeliveryMethods[m]
	return ok
}

func ValidPaymentMethod(m int) bool {
	_, ok := PaymentMethods[m]
	return ok
}
