package v1

import "github.com/shenikar/emergency_response_system/internal/models"

// DTOToReportModel преобразует DTO подачи отчета в доменную модель
func DTOToReportModel(dto CreateReportRequest) *models.Report {
	return &models.Report{
		Type:          dto.Type,
		Description:   dto.Description,
		Username:      dto.Username,
		FirstName:     dto.FirstName,
		LastName:      dto.LastName,
		Age:           dto.Age,
		ContactNumber: dto.ContactNumber,
		Latitude:      dto.Latitude,
		Longitude:     dto.Longitude,
	}
}

// ModelToReportResponse преобразует доменную модель в DTO для ответа
func ModelToReportResponse(model *models.Report) *ReportResponse {
	actions := make([]ResponderActionResponse, len(model.Responders))
	for i, action := range model.Responders {
		actions[i] = ResponderActionResponse{
			ResponderID: action.ResponderID,
			FullName:    action.FullName,
			Action:      string(action.Action),
			Timestamp:   action.Timestamp,
		}
	}

	return &ReportResponse{
		ID:                 model.ID,
		Type:               model.Type,
		Description:        model.Description,
		Username:           model.Username,
		FirstName:          model.FirstName,
		LastName:           model.LastName,
		Age:                model.Age,
		ContactNumber:      model.ContactNumber,
		Latitude:           model.Latitude,
		Longitude:          model.Longitude,
		Status:             string(model.Status),
		CancellationReason: model.CancellationReason,
		CancellationTime:   model.CancellationTime,
		ResolvedAt:         model.ResolvedAt,
		Responders:         actions,
		CreatedAt:          model.CreatedAt,
		UpdatedAt:          model.UpdatedAt,
	}
}

// ModelsToReportResponses преобразует слайс моделей в слайс DTO
func ModelsToReportResponses(models []*models.Report) []*ReportResponse {
	responses := make([]*ReportResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToReportResponse(model)
	}
	return responses
}
