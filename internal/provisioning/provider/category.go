package provider

import (
	"slices"

	"github.com/imamik/nfsensor/internal/platform/prism"
	"github.com/imamik/nfsensor/internal/provisioning"
)

// ProvisionCategory makes sure the provider category value exists. In a dry
// run it only reports whether it would be created.
func (p *Provisioner) ProvisionCategory(ctx *provisioning.Context) error {
	cat := ctx.Config.Category
	item := provisioning.ItemResult{
		Kind: provisioning.KindCategory,
		Name: cat.Name + "=" + cat.Value,
	}

	values, err := ctx.Client.ListCategoryValues(ctx, cat.Name)
	if err != nil {
		return &provisioning.ProviderCategoryError{Name: cat.Name, Value: cat.Value, Op: "list", Err: err}
	}

	if hasValue(values, cat.Value) {
		item.Action = provisioning.ActionExists
		ctx.Record(phase, item)
		return nil
	}

	if ctx.DryRun() {
		item.Action = provisioning.ActionPlanned
		item.Detail = "would create category value"
		ctx.Record(phase, item)
		return nil
	}

	provisioning.LogResourceCreating(ctx.Observer, phase, provisioning.KindCategory, item.Name)

	if err := ctx.Client.EnsureCategoryKey(ctx, cat.Name, cat.Description); err != nil {
		return p.categoryFailed(ctx, item, &provisioning.ProviderCategoryError{
			Name: cat.Name, Value: cat.Value, Op: "create key of", Err: err,
		})
	}
	if err := ctx.Client.CreateCategoryValue(ctx, cat.Name, cat.Value, cat.Description); err != nil {
		return p.categoryFailed(ctx, item, &provisioning.ProviderCategoryError{
			Name: cat.Name, Value: cat.Value, Op: "create", Err: err,
		})
	}

	// Verify
	values, err = ctx.Client.ListCategoryValues(ctx, cat.Name)
	if err != nil {
		return p.categoryFailed(ctx, item, &provisioning.ProviderCategoryError{
			Name: cat.Name, Value: cat.Value, Op: "verify", Err: err,
		})
	}
	if !hasValue(values, cat.Value) {
		return p.categoryFailed(ctx, item, &provisioning.VerificationError{Name: cat.Name, Value: cat.Value})
	}

	item.Action = provisioning.ActionCreated
	ctx.Record(phase, item)
	return nil
}

func (p *Provisioner) categoryFailed(ctx *provisioning.Context, item provisioning.ItemResult, err error) error {
	ctx.Record(phase, provisioning.Failed(item.Kind, item.Name, "", "", err))
	return err
}

func hasValue(values []prism.CategoryValue, value string) bool {
	return slices.ContainsFunc(values, func(v prism.CategoryValue) bool {
		return v.Value == value
	})
}
