package models

// Plan описывает тарифный план подписки: фиксированную цену и срок действия.
type Plan struct {
	Name  string
	Price float64
	Days  int
}

// Plans — таблица тарифов. Все планы действуют 30 дней и отличаются
// только ценой. Сумма платежа должна совпадать с ценой плана точно:
// частичные платежи и конвертация валют не поддерживаются.
var Plans = map[string]Plan{
	"basic":   {Name: "basic", Price: 9.99, Days: 30},
	"premium": {Name: "premium", Price: 14.99, Days: 30},
	"family":  {Name: "family", Price: 19.99, Days: 30},
}

// PlanNone значение плана пользователя без действующей подписки.
const PlanNone = "none"
