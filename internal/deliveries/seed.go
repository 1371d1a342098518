package deliveries

import "github.com/BearBump/DriverBox/internal/models"

func ptr(s string) *string { return &s }

// Seed is the built-in route used when no seed file is configured.
func Seed() []models.Delivery {
	return []models.Delivery{
		{
			ID: "1", Invoice: "NF-100001", Client: "Construtora Horizonte",
			Address: "Av. Paulista, 1000 - Bela Vista", City: "São Paulo, SP",
			Items: 12, Status: models.DeliveryStatusPending, Priority: models.PriorityHigh,
			ScheduledTime: ptr("08:00"), Phone: ptr("(11) 99999-0001"),
			Notes: ptr("Vidros temperados 10mm - Cuidado redobrado"),
		},
		{
			ID: "2", Invoice: "NF-100002", Client: "Vidraçaria Central",
			Address: "Rua das Flores, 250 - Centro", City: "São Paulo, SP",
			Items: 8, Status: models.DeliveryStatusPending, Priority: models.PriorityMedium,
			ScheduledTime: ptr("09:30"), Phone: ptr("(11) 99999-0002"),
		},
		{
			ID: "3", Invoice: "NF-100003", Client: "Loja Cristal",
			Address: "Av. Brasil, 500 - Jardins", City: "São Paulo, SP",
			Items: 5, Status: models.DeliveryStatusInTransit, Priority: models.PriorityMedium,
			ScheduledTime: ptr("10:00"), Phone: ptr("(11) 99999-0003"),
		},
		{
			ID: "4", Invoice: "NF-100004", Client: "Prédio Comercial Tower",
			Address: "Rua Augusta, 1500 - Consolação", City: "São Paulo, SP",
			Items: 20, Status: models.DeliveryStatusPending, Priority: models.PriorityHigh,
			ScheduledTime: ptr("11:00"), Phone: ptr("(11) 99999-0004"),
			Notes: ptr("Entrega no 15º andar - Agendar uso do elevador de carga"),
		},
		{
			ID: "5", Invoice: "NF-100005", Client: "Shopping Center Goiânia",
			Address: "Av. T-63, 1000 - Setor Bueno", City: "Goiânia, GO",
			Items: 15, Status: models.DeliveryStatusDelivered, Priority: models.PriorityLow,
			ScheduledTime: ptr("07:00"), Phone: ptr("(62) 99999-0005"),
		},
		{
			ID: "6", Invoice: "NF-100006", Client: "Residencial Park",
			Address: "Rua das Palmeiras, 100 - Alphaville", City: "Barueri, SP",
			Items: 6, Status: models.DeliveryStatusIssue, Priority: models.PriorityHigh,
			ScheduledTime: ptr("14:00"), Phone: ptr("(11) 99999-0006"),
			Notes: ptr("1 vidro com avaria detectada"),
		},
	}
}
