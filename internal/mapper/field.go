package mapper

import (
	"sort"

	"github.com/anyulbade/payment-config-service/internal/dto"
	"github.com/anyulbade/payment-config-service/internal/model"
)

// FieldContent is the meaning of the fields.value column, which depends on
// the transaction type of the field.
type FieldContent interface {
	Column() *string
	apply(*dto.FieldWithOptions)
}

type DepositContent struct {
	DefaultValue string
}

type WithdrawalContent struct {
	Name string
}

func (c DepositContent) Column() *string { v := c.DefaultValue; return &v }

func (c DepositContent) apply(d *dto.FieldWithOptions) {
	v := c.DefaultValue
	d.DefaultValue = &v
	d.Name = nil
}

func (c WithdrawalContent) Column() *string { v := c.Name; return &v }

func (c WithdrawalContent) apply(d *dto.FieldWithOptions) {
	v := c.Name
	d.Name = &v
	d.DefaultValue = nil
}

func ContentOf(f model.Field) FieldContent {
	var value string
	if f.Value != nil {
		value = *f.Value
	}
	if f.TransactionType == model.TransactionTypeDeposit {
		return DepositContent{DefaultValue: value}
	}
	return WithdrawalContent{Name: value}
}

// contentFromDto picks the attribute that is meaningful for the field's
// transaction type and ignores the other.
func contentFromDto(d dto.FieldWithOptions) FieldContent {
	if d.TransactionType == model.TransactionTypeDeposit {
		if d.DefaultValue == nil {
			return DepositContent{}
		}
		return DepositContent{DefaultValue: *d.DefaultValue}
	}
	if d.Name == nil {
		return WithdrawalContent{}
	}
	return WithdrawalContent{Name: *d.Name}
}

func CreateWithOptionsDto(f model.Field, options []model.FieldOption) dto.FieldWithOptions {
	out := dto.FieldWithOptions{
		Key:             f.Key,
		TransactionType: f.TransactionType,
		FieldType:       f.FieldType,
		Pattern:         f.Pattern,
		IsMandatory:     f.IsMandatory,
		IsEnabled:       f.IsEnabled,
		Options:         []dto.FieldOption{},
	}
	ContentOf(f).apply(&out)

	for _, o := range options {
		if o.FieldID != f.ID {
			continue
		}
		out.Options = append(out.Options, dto.FieldOption{Key: o.Key, Value: o.Value, IsEnabled: o.IsEnabled})
	}
	sort.SliceStable(out.Options, func(i, j int) bool { return out.Options[i].Key < out.Options[j].Key })
	return out
}

// CreateEntities is the write direction: options[i] belongs to fields[i].
func CreateEntities(providerMethodID int64, fields []dto.FieldWithOptions) ([]model.Field, [][]model.FieldOption) {
	entities := make([]model.Field, len(fields))
	options := make([][]model.FieldOption, len(fields))

	for i, d := range fields {
		entities[i] = model.Field{
			ProviderMethodID: providerMethodID,
			TransactionType:  d.TransactionType,
			Key:              d.Key,
			FieldType:        d.FieldType,
			Value:            contentFromDto(d).Column(),
			Pattern:          d.Pattern,
			IsMandatory:      d.IsMandatory,
			IsEnabled:        d.IsEnabled,
		}
		opts := make([]model.FieldOption, len(d.Options))
		for j, o := range d.Options {
			opts[j] = model.FieldOption{Key: o.Key, Value: o.Value, IsEnabled: o.IsEnabled}
		}
		options[i] = opts
	}
	return entities, options
}

// SplitByTransactionType separates deposit fields from every other kind.
func SplitByTransactionType(fields []dto.FieldWithOptions) dto.FieldsByTransactionType {
	out := dto.FieldsByTransactionType{
		Deposit:    []dto.FieldWithOptions{},
		Withdrawal: []dto.FieldWithOptions{},
	}
	for _, f := range fields {
		if f.TransactionType == model.TransactionTypeDeposit {
			out.Deposit = append(out.Deposit, f)
		} else {
			out.Withdrawal = append(out.Withdrawal, f)
		}
	}
	return out
}

func FieldDtos(fields []model.Field, options []model.FieldOption) []dto.FieldWithOptions {
	out := make([]dto.FieldWithOptions, len(fields))
	for i, f := range fields {
		out[i] = CreateWithOptionsDto(f, options)
	}
	return out
}
