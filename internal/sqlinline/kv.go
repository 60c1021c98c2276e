package sqlinline

const QCreateKVTable = `--sql 4c1d9e52-7b0a-4f7e-9c3d-0a61e58b24d9
create table if not exists ledger_kv (
    key bytea primary key,
    value bytea not null
);
`

const QGetKV = `--sql a9f3c0b1-52de-4c87-8e14-6db92f07a3c5
select value from ledger_kv where key = $1::bytea;
`

const QSetKV = `--sql e7b84d26-1f93-40ba-b5c2-98d4a01c7ef3
insert into ledger_kv(key, value)
values ($1::bytea, $2::bytea)
on conflict (key) do update set value = excluded.value;
`
