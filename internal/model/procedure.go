package model

// Procedure описывает вид процедуры, на которую можно записаться.
// IntervalMinutes задаёт сетку времени для самостоятельной записи:
// клиенту предлагаются только слоты, минуты которых кратны интервалу.
type Procedure struct {
	Code            string `json:"code"`
	Title           string `json:"title"`
	Description     string `json:"description"`
	IntervalMinutes int    `json:"interval_minutes"`
}

// Procedures фиксированный каталог процедур студии.
var Procedures = []Procedure{
	{
		Code:            "botox",
		Title:           "Ботокс инъекции",
		Description:     "Разглаживают морщины, делают кожу молодой и сияющей. ✨",
		IntervalMinutes: 30,
	},
	{
		Code:            "hyaluronic",
		Title:           "Гиалуроновая кислота",
		Description:     "Увлажняет кожу, возвращает ей упругость. 💧",
		IntervalMinutes: 30,
	},
	{
		Code:            "mesotherapy",
		Title:           "Мезотерапия лица",
		Description:     "Улучшает текстуру кожи, устраняет мелкие недостатки. 🌸",
		IntervalMinutes: 60,
	},
	{
		Code:            "peeling",
		Title:           "Пилинг лица",
		Description:     "Очищает кожу, устраняет пигментные пятна. 🌿",
		IntervalMinutes: 60,
	},
}

// ProcedureByCode возвращает процедуру по коду или nil.
func ProcedureByCode(code string) *Procedure {
	for i := range Procedures {
		if Procedures[i].Code == code {
			return &Procedures[i]
		}
	}
	return nil
}
