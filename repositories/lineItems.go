package repositories

import (
	"PharmaDesk/codec"
	"PharmaDesk/models"
	"strconv"

	"github.com/rs/zerolog"
)

// parseLineItems decodes a nested medicineId:quantity list and resolves
// each reference against the loaded catalog. An item whose medicine id does
// not resolve, or whose parts are malformed, is dropped with a diagnostic;
// the containing record still loads.
func parseLineItems(log zerolog.Logger, entity string, recordID int, field string, catalog []*models.Medicine) []models.LineItem {
	items := codec.SplitItems(field)
	parsed := make([]models.LineItem, 0, len(items))
	for _, item := range items {
		parts := codec.SplitParts(item)
		if len(parts) < 2 {
			log.Warn().Str("entity", entity).Int("record_id", recordID).Str("item", item).
				Msg("Dropping malformed line item")
			continue
		}
		medicineID, err := codec.ParseInt(entity, "medicineId", parts[0])
		if err != nil {
			log.Warn().Str("entity", entity).Int("record_id", recordID).Err(err).
				Msg("Dropping malformed line item")
			continue
		}
		quantity, err := codec.ParseInt(entity, "quantity", parts[1])
		if err != nil {
			log.Warn().Str("entity", entity).Int("record_id", recordID).Err(err).
				Msg("Dropping malformed line item")
			continue
		}
		if models.FindMedicine(catalog, medicineID) == nil {
			log.Warn().Str("entity", entity).Int("record_id", recordID).Int("medicine_id", medicineID).
				Msg("Dropping line item with unresolved medicine reference")
			continue
		}
		parsed = append(parsed, models.LineItem{MedicineID: medicineID, Quantity: quantity})
	}
	return parsed
}

func formatLineItems(items []models.LineItem) string {
	formatted := make([]string, len(items))
	for i, item := range items {
		formatted[i] = codec.JoinParts(strconv.Itoa(item.MedicineID), strconv.Itoa(item.Quantity))
	}
	return codec.JoinItems(formatted)
}
