package testing

import (
	"time"

	"github.com/vsinha/vendorrisk/pkg/domain/entities"
	"github.com/vsinha/vendorrisk/pkg/infrastructure/repositories/memory"
)

// BuildDeliveryTestData builds a small two-material, two-site delivery history.
//
// For BOLT_M12 across all locations over the trailing 3 months (latest delivery
// 2025-06-20, window starts 2025-03-20):
//
//	ACME:    delays 4, 2, 0      avg 2.0   late 2/3  risk 3.333
//	GLOBEX:  delays 1, -1        avg 0.0   late 1/2  risk 1.0
//	INITECH: delays -2, -1       avg -1.5  late 0    risk -1.5
//
// INITECH also has a January delivery that only the 6 month window includes.
func BuildDeliveryTestData() *memory.DeliveryRepository {
	repo := memory.NewDeliveryRepository(16)

	records := []*entities.DeliveryRecord{
		delivery("BOLT_M12", "ACME", "MICHOUD", date(2025, 4, 2), 4, "Carrier delay"),
		delivery("BOLT_M12", "GLOBEX", "KENNEDY", date(2025, 4, 10), 1, ""),
		delivery("BOLT_M12", "ACME", "KENNEDY", date(2025, 5, 5), 2, ""),
		delivery("BOLT_M12", "INITECH", "MICHOUD", date(2025, 5, 12), -2, "Early dispatch"),
		delivery("BOLT_M12", "GLOBEX", "MICHOUD", date(2025, 6, 1), -1, "Early dispatch"),
		delivery("BOLT_M12", "ACME", "MICHOUD", date(2025, 6, 20), 0, "On schedule"),
		delivery("BOLT_M12", "INITECH", "KENNEDY", date(2025, 3, 20), -1, ""),
		delivery("BOLT_M12", "INITECH", "KENNEDY", date(2025, 1, 15), 9, "Strike"),
		delivery("VALVE_V2", "GLOBEX", "KENNEDY", date(2025, 2, 3), 6, "Quality hold"),
		delivery("VALVE_V2", "GLOBEX", "KENNEDY", date(2025, 2, 17), 3, ""),
	}

	if err := repo.LoadDeliveries(records); err != nil {
		panic(err)
	}
	return repo
}

func delivery(material entities.MaterialID, vendor entities.VendorID, location entities.Location, deliveryDate time.Time, delay int, reason string) *entities.DeliveryRecord {
	record, err := entities.NewDeliveryRecord(material, vendor, location, deliveryDate, delay, reason)
	if err != nil {
		panic(err)
	}
	return record
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
