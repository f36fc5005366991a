package mapping

import (
	"errors"

	"github.com/SscSPs/empower_finance_app/internal/core/domain"
	"github.com/SscSPs/empower_finance_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) (models.Transaction, error) {
	tags, err := marshalList(d.Tags)
	if err != nil {
		return models.Transaction{}, err
	}
	recurring, err := marshalOptional(d.RecurringDetails)
	if err != nil {
		return models.Transaction{}, err
	}
	attachments, err := marshalList(d.Attachments)
	if err != nil {
		return models.Transaction{}, err
	}
	location, err := marshalOptional(d.Location)
	if err != nil {
		return models.Transaction{}, err
	}

	return models.Transaction{
		TransactionID:    d.TransactionID,
		UserID:           d.UserID,
		Type:             string(d.Type),
		Category:         d.Category,
		Amount:           d.Amount,
		Description:      d.Description,
		Date:             d.Date.UTC(),
		Tags:             tags,
		RecurringDetails: recurring,
		Attachments:      attachments,
		Location:         location,
		AuditFields:      ToModelAuditFields(d.AuditFields),
	}, nil
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) (domain.Transaction, error) {
	tags, tagsErr := unmarshalList[string](m.Tags, "tags")
	recurring, recurringErr := unmarshalOptional[domain.RecurringDetails](m.RecurringDetails, "recurring_details")
	attachments, attachmentsErr := unmarshalList[domain.Attachment](m.Attachments, "attachments")
	location, locationErr := unmarshalOptional[domain.Location](m.Location, "location")
	if err := errors.Join(tagsErr, recurringErr, attachmentsErr, locationErr); err != nil {
		return domain.Transaction{}, err
	}

	return domain.Transaction{
		TransactionID:    m.TransactionID,
		UserID:           m.UserID,
		Type:             domain.TransactionType(m.Type),
		Category:         m.Category,
		Amount:           m.Amount,
		Description:      m.Description,
		Date:             m.Date.UTC(),
		Tags:             tags,
		RecurringDetails: recurring,
		Attachments:      attachments,
		Location:         location,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
	}, nil
}

// ToDomainTransactionSlice converts a slice of model Transactions to a slice of domain Transactions
func ToDomainTransactionSlice(ms []models.Transaction) ([]domain.Transaction, error) {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		d, err := ToDomainTransaction(m)
		if err != nil {
			return nil, err
		}
		ds[i] = d
	}
	return ds, nil
}
